package catalogcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	"github.com/OmGaler/kp-pesach-orders/search"
)

// GetCatalog returns the browse view: every category that has products.
func GetCatalog(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := cache.Get()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
			return
		}
		c.JSON(http.StatusOK, catalog.WithoutEmptyCategories(snap.Categories))
	}
}

// SearchCatalog runs the fuzzy search over the cached index.
func SearchCatalog(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := cache.Get()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
			return
		}
		c.JSON(http.StatusOK, search.Search(snap.Index, c.Query("q")))
	}
}

// RefreshCatalog rebuilds the snapshot from the source workbook, for
// when the store uploads a new list mid-season.
func RefreshCatalog(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := cache.Refresh()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload catalog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Catalog reloaded",
			"categories": len(snap.Categories),
			"products":   len(snap.Products),
		})
	}
}
