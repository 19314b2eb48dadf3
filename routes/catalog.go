package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	catalogcontroller "github.com/OmGaler/kp-pesach-orders/controllers/catalog"
)

func SetupCatalogRoutes(r *gin.Engine, cache *catalog.Cache) {
	group := r.Group("/catalog")
	{
		// Full browse view
		group.GET("", catalogcontroller.GetCatalog(cache))

		// Fuzzy product search, ?q=
		group.GET("/search", catalogcontroller.SearchCatalog(cache))

		// Rebuild from the source workbook
		group.POST("/refresh", catalogcontroller.RefreshCatalog(cache))
	}
}
