package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaadicloset/shaadibackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// The content endpoints are one generic CRUD surface for every asset-bearing
// kind (stores, hero images, testimonials, videos, ...). A kind declares its
// URL fields in models.ContentKinds; everything else on the document is
// passthrough JSON. The cleanup diff runs over the declared fields only.

func contentKind(c *gin.Context) (models.ContentKind, bool) {
	kind, ok := models.ContentKinds[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown content kind"})
	}
	return kind, ok
}

// parseContentData decodes the optional "data" multipart field into a
// document, dropping keys the server owns and rejecting patches that put the
// wrong shape under a declared URL field.
func parseContentData(c *gin.Context, kind models.ContentKind) (bson.M, error) {
	doc := bson.M{}
	raw := c.PostForm("data")
	if raw == "" {
		return doc, nil
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, errors.New("invalid data json")
	}
	delete(doc, "_id")
	delete(doc, "createdAt")
	delete(doc, "updatedAt")
	if err := kind.ValidateURLFields(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// applyContentUploads validates and uploads the request's files into doc:
// one file replaces a scalar URL field of the same name; files under an
// array field's name are appended to it. Returns every URL uploaded so the
// caller can undo on a failed write.
func (a *App) applyContentUploads(c *gin.Context, kind models.ContentKind, doc bson.M) ([]string, error) {
	ctx := c.Request.Context()
	uploaded := make([]string, 0, 2)

	undo := func() {
		a.Bucket.CleanupAll(ctx, uploaded)
	}

	for _, field := range kind.ScalarURLFields {
		fh := a.formFile(c, field)
		if fh == nil {
			continue
		}
		if _, err := a.Files.ValidateFile(fh); err != nil {
			undo()
			return nil, err
		}
		url, err := a.Bucket.UploadFile(ctx, kind.Collection, fh)
		if err != nil {
			undo()
			return nil, err
		}
		doc[field] = url
		uploaded = append(uploaded, url)
	}

	for _, field := range kind.ArrayURLFields {
		files := a.formFiles(c, field)
		if len(files) == 0 {
			continue
		}
		if err := a.validateFiles(files...); err != nil {
			undo()
			return nil, err
		}
		urls, err := a.Bucket.UploadFiles(ctx, kind.Collection, files)
		if err != nil {
			undo()
			return nil, err
		}
		existing := make([]string, 0, len(urls))
		switch v := doc[field].(type) {
		case []string:
			existing = v
		case bson.A:
			for _, e := range v {
				if s, ok := e.(string); ok {
					existing = append(existing, s)
				}
			}
		case []interface{}:
			for _, e := range v {
				if s, ok := e.(string); ok {
					existing = append(existing, s)
				}
			}
		}
		doc[field] = append(existing, urls...)
		uploaded = append(uploaded, urls...)
	}

	return uploaded, nil
}

// GET /content/:kind
func (a *App) ListContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := contentKind(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		col := a.DB.Collection(kind.Collection)

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer cursor.Close(ctx)

		items := make([]bson.M, 0)
		for cursor.Next(ctx) {
			var doc bson.M
			if err := cursor.Decode(&doc); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			items = append(items, doc)
		}
		if err := cursor.Err(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// POST /admin/content/:kind
func (a *App) CreateContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := contentKind(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		doc, err := parseContentData(c, kind)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		uploaded, err := a.applyContentUploads(c, kind, doc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UTC()
		doc["_id"] = bson.NewObjectID()
		doc["createdAt"] = now
		doc["updatedAt"] = now

		if _, err := a.DB.Collection(kind.Collection).InsertOne(ctx, doc); err != nil {
			a.Bucket.CleanupAll(ctx, uploaded)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, doc)
	}
}

// PATCH /admin/content/:kind/:id
func (a *App) UpdateContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := contentKind(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		col := a.DB.Collection(kind.Collection)

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var old bson.M
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&old); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		patch, err := parseContentData(c, kind)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The new snapshot starts as old overlaid with the patch, so an
		// array field the admin pruned in "data" diffs against what it
		// replaced.
		next := bson.M{}
		for k, v := range old {
			next[k] = v
		}
		for k, v := range patch {
			next[k] = v
		}

		uploaded, err := a.applyContentUploads(c, kind, next)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		set := bson.M{"updatedAt": time.Now().UTC()}
		for k := range patch {
			set[k] = next[k]
		}
		// Stored documents may predate the field-type checks, so compare as
		// strings rather than raw interface values.
		for _, f := range kind.ScalarURLFields {
			oldURL, _ := old[f].(string)
			newURL, _ := next[f].(string)
			if newURL != oldURL {
				set[f] = next[f]
			}
		}
		for _, f := range kind.ArrayURLFields {
			if _, patched := patch[f]; patched || len(uploaded) > 0 {
				set[f] = next[f]
			}
		}

		if _, err := col.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			a.Bucket.CleanupAll(ctx, uploaded)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Record committed; drop whatever it no longer references.
		a.Bucket.CleanupRemoved(ctx, kind.AssetURLs(old), kind.AssetURLs(next))

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DELETE /admin/content/:kind/:id
func (a *App) DeleteContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := contentKind(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		col := a.DB.Collection(kind.Collection)

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var doc bson.M
		if err := col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		a.Bucket.CleanupAll(ctx, kind.AssetURLs(doc))

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
