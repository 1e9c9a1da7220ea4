package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shaadicloset/shaadibackend/catalog"
	"github.com/shaadicloset/shaadibackend/dto"
	"github.com/shaadicloset/shaadibackend/models"
	"github.com/shaadicloset/shaadibackend/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// writeCatalogError maps the catalog error taxonomy onto status codes:
// 400 validation, 404 missing target, 409 productId conflict.
func writeCatalogError(c *gin.Context, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, catalog.ErrDuplicateProductID):
		c.JSON(http.StatusConflict, gin.H{"error": "productId already in use", "field": "productId"})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GET /collections — public browse with taxonomy filters and fixed-size
// pages.
func (a *App) BrowseCollections() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		q := catalog.BrowseQuery{
			Category:    c.Query("category"),
			Occasion:    c.Query("occasion"),
			Type:        c.Query("type"),
			Subcategory: c.Query("subcategory"),
			Page:        utils.ParseIntDefault(c.Query("page"), 1),
		}
		if strings.TrimSpace(q.Category) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category is required", "field": "category"})
			return
		}

		// Narrow the fetch when the category parses; the engine enforces the
		// match either way.
		filter := bson.M{}
		if cat, ok := models.ParseCategory(q.Category); ok {
			filter["category"] = cat
		}

		items, err := a.Catalog.FindItems(ctx, filter, 0, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, catalog.FilterAndPaginate(items, q))
	}
}

// GET /collections/:id
func (a *App) GetCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
			return
		}
		item, err := a.Catalog.FindItem(c.Request.Context(), id)
		if err != nil {
			writeCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// GET /admin/collections — paginated listing with title/productId search.
func (a *App) AdminListCollections() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), 20)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		filter := bson.M{}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			filter["$or"] = bson.A{
				bson.M{"title": bson.M{"$regex": q, "$options": "i"}},
				bson.M{"productId": bson.M{"$regex": q, "$options": "i"}},
			}
		}

		items, err := a.Catalog.FindItems(ctx, filter, int64((page-1)*limit), int64(limit))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		total, err := a.Catalog.CountItems(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

func (a *App) formFile(c *gin.Context, field string) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func (a *App) formFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

func (a *App) validateFiles(files ...*multipart.FileHeader) error {
	for _, fh := range files {
		if fh == nil {
			continue
		}
		if _, err := a.Files.ValidateFile(fh); err != nil {
			return err
		}
	}
	return nil
}

// POST /admin/collections
func (a *App) CreateCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		jsonData := c.PostForm("data")
		if jsonData == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.CreateCollectionDTO
		if err := json.Unmarshal([]byte(jsonData), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}

		mainFile := a.formFile(c, "mainImage")
		main2File := a.formFile(c, "mainImage2")
		otherFiles := a.formFiles(c, "otherImages")

		input := catalog.ItemInput{
			Title:          body.Title,
			ProductID:      body.ProductID,
			Category:       body.Category,
			Occasion:       body.Occasion,
			CollectionType: body.CollectionType,
			ChildCategory:  body.ChildCategory,
			Status:         body.Status,
			HasMainImage:   mainFile != nil,
		}

		// Validate and probe uniqueness before anything touches storage.
		n, err := a.Taxonomy.Prepare(ctx, input, bson.ObjectID{})
		if err != nil {
			writeCatalogError(c, err)
			return
		}

		if err := a.validateFiles(append([]*multipart.FileHeader{mainFile, main2File}, otherFiles...)...); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		prefix := "collections/" + utils.GenerateSlug(n.Title)
		uploaded := make([]string, 0, len(otherFiles)+2)

		mainURL, err := a.Bucket.UploadFile(ctx, prefix, mainFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		uploaded = append(uploaded, mainURL)

		var main2URL string
		if main2File != nil {
			main2URL, err = a.Bucket.UploadFile(ctx, prefix, main2File)
			if err != nil {
				a.Bucket.CleanupAll(ctx, uploaded)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			uploaded = append(uploaded, main2URL)
		}

		otherURLs := []string{}
		if len(otherFiles) > 0 {
			otherURLs, err = a.Bucket.UploadFiles(ctx, prefix, otherFiles)
			if err != nil {
				a.Bucket.CleanupAll(ctx, uploaded)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			uploaded = append(uploaded, otherURLs...)
		}

		item := models.CatalogItem{
			ProductID:       n.ProductID,
			Title:           n.Title,
			Description:     strings.TrimSpace(body.Description),
			Category:        n.Category,
			Occasion:        n.Occasion,
			CollectionType:  n.CollectionType,
			ChildCategory:   n.ChildCategory,
			MainImage:       mainURL,
			MainImage2:      main2URL,
			OtherImages:     otherURLs,
			Price:           body.Price,
			DiscountedPrice: body.DiscountedPrice,
			Status:          n.Status,
			Tags:            body.Tags,
		}

		if err := a.Catalog.CreateItem(ctx, &item); err != nil {
			// The record never landed; don't leave its uploads behind.
			a.Bucket.CleanupAll(ctx, uploaded)
			writeCatalogError(c, err)
			return
		}

		a.Taxonomy.RegisterOptions(ctx, n)

		c.JSON(http.StatusCreated, item)
	}
}

// PATCH /admin/collections/:id
func (a *App) UpdateCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
			return
		}

		dataStr := c.PostForm("data")
		if dataStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing data"})
			return
		}
		var body dto.UpdateCollectionDTO
		if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json"})
			return
		}

		// Phase one: read the current state — the cleanup diff needs it.
		old, err := a.Catalog.FindItem(ctx, id)
		if err != nil {
			writeCatalogError(c, err)
			return
		}

		mainFile := a.formFile(c, "mainImage")
		main2File := a.formFile(c, "mainImage2")
		otherFiles := a.formFiles(c, "otherImages")

		pick := func(p *string, old string) string {
			if p != nil {
				return *p
			}
			return old
		}

		input := catalog.ItemInput{
			Title:          pick(body.Title, old.Title),
			ProductID:      pick(body.ProductID, old.ProductID),
			Category:       pick(body.Category, string(old.Category)),
			Occasion:       pick(body.Occasion, old.Occasion),
			CollectionType: pick(body.CollectionType, old.CollectionType),
			ChildCategory:  pick(body.ChildCategory, string(old.ChildCategory)),
			Status:         pick(body.Status, string(old.Status)),
			HasMainImage:   mainFile != nil || old.MainImage != "",
		}

		n, err := a.Taxonomy.Prepare(ctx, input, id)
		if err != nil {
			writeCatalogError(c, err)
			return
		}

		if err := a.validateFiles(append([]*multipart.FileHeader{mainFile, main2File}, otherFiles...)...); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		prefix := "collections/" + utils.GenerateSlug(n.Title)
		newUploads := make([]string, 0, len(otherFiles)+2)

		newMain := old.MainImage
		if mainFile != nil {
			newMain, err = a.Bucket.UploadFile(ctx, prefix, mainFile)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			newUploads = append(newUploads, newMain)
		}

		newMain2 := old.MainImage2
		if body.RemoveMainImage2 {
			newMain2 = ""
		}
		if main2File != nil {
			newMain2, err = a.Bucket.UploadFile(ctx, prefix, main2File)
			if err != nil {
				a.Bucket.CleanupAll(ctx, newUploads)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			newUploads = append(newUploads, newMain2)
		}

		addedOther := []string{}
		if len(otherFiles) > 0 {
			addedOther, err = a.Bucket.UploadFiles(ctx, prefix, otherFiles)
			if err != nil {
				a.Bucket.CleanupAll(ctx, newUploads)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			newUploads = append(newUploads, addedOther...)
		}

		newOther := utils.MergeURLLists(old.OtherImages, body.RemovedOtherImages, addedOther)

		set := bson.M{
			"title":          n.Title,
			"productId":      n.ProductID,
			"category":       n.Category,
			"occasion":       n.Occasion,
			"collectionType": n.CollectionType,
			"childCategory":  n.ChildCategory,
			"status":         n.Status,
			"mainImage":      newMain,
			"mainImage2":     newMain2,
			"otherImages":    newOther,
		}
		if body.Description != nil {
			set["description"] = strings.TrimSpace(*body.Description)
		}
		if body.Price != nil {
			set["price"] = *body.Price
		}
		if body.DiscountedPrice != nil {
			set["discountedPrice"] = *body.DiscountedPrice
		}
		if body.Tags != nil {
			set["tags"] = *body.Tags
		}

		// Phase two: commit. Only this gate decides the request's outcome.
		if err := a.Catalog.UpdateItem(ctx, id, set); err != nil {
			a.Bucket.CleanupAll(ctx, newUploads)
			writeCatalogError(c, err)
			return
		}

		// Phase three: best-effort cleanup of whatever the record dropped.
		updated := models.CatalogItem{MainImage: newMain, MainImage2: newMain2, OtherImages: newOther}
		a.Bucket.CleanupRemoved(ctx, old.AssetURLs(), updated.AssetURLs())

		a.Taxonomy.RegisterOptions(ctx, n)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DELETE /admin/collections/:id
func (a *App) DeleteCollection() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
			return
		}

		item, err := a.Catalog.DeleteItem(ctx, id)
		if err != nil {
			writeCatalogError(c, err)
			return
		}

		a.Bucket.CleanupAll(ctx, item.AssetURLs())

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
