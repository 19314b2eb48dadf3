package routes

import (
	"github.com/gin-gonic/gin"

	ordercontroller "github.com/OmGaler/kp-pesach-orders/controllers/order"
	"github.com/OmGaler/kp-pesach-orders/orders"
)

func SetupOrderRoutes(r *gin.Engine, svc *orders.Service) {
	r.POST("/orders", ordercontroller.SubmitOrderHandler(svc))
}
