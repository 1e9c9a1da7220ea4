package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shaadicloset/shaadibackend/catalog"
	"github.com/shaadicloset/shaadibackend/dto"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// GET /meta-options?key=occasion_men — the filter-dropdown values. With no
// key, every stored option is returned (the admin editor groups them
// client-side). values=true returns just the sorted value strings for a key,
// the shape the storefront dropdowns consume.
func (a *App) GetMetaOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Query("key"))

		if key != "" && c.Query("values") == "true" {
			values, err := a.Catalog.OptionValues(c.Request.Context(), key)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"values": values})
			return
		}

		options, err := a.Catalog.Options(c.Request.Context(), key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": options})
	}
}

// POST /admin/meta-options — explicit option creation from the admin editor.
// Re-adding an existing pair succeeds quietly; the unique index makes the
// insert idempotent.
func (a *App) AddMetaOption() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateMetaOptionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		key, value, ok := catalog.NormalizeOption(body.Key, body.Value)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "key and value are required"})
			return
		}
		if err := a.Catalog.InsertOption(c.Request.Context(), key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"key": key, "value": value})
	}
}

// DELETE /admin/meta-options/:id — options are only ever removed explicitly;
// deleting the last item that uses a value leaves the option in place.
func (a *App) DeleteMetaOption() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
			return
		}

		if err := a.Catalog.DeleteOption(c.Request.Context(), id); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "option not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
