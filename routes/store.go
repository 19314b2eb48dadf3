package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/config"
	storecontroller "github.com/OmGaler/kp-pesach-orders/controllers/store"
)

func SetupStoreRoutes(r *gin.Engine, cfg config.StoreConfig) {
	r.GET("/store", storecontroller.GetStoreInfo(cfg))
}
