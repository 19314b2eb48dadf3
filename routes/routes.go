package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/orders"
)

// SetupRoutes is the single entry-point that wires up the catalog,
// store and order route groups.
func SetupRoutes(r *gin.Engine, cfg config.StoreConfig, cache *catalog.Cache, svc *orders.Service) {
	SetupCatalogRoutes(r, cache)
	SetupStoreRoutes(r, cfg)
	SetupOrderRoutes(r, svc)
}
