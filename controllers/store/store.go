package storecontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/delivery"
	"github.com/OmGaler/kp-pesach-orders/models"
)

// GetStoreInfo returns what the order form needs to render: contact
// details, the delivery window and the first date it can preselect.
func GetStoreInfo(cfg config.StoreConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"storeName":           cfg.StoreName,
			"contactPhone":        cfg.ContactPhone,
			"contactEmail":        cfg.ContactEmail,
			"openingTimes":        cfg.OpeningTimes,
			"deliveryWindowStart": cfg.DeliveryWindowStart,
			"deliveryWindowEnd":   cfg.DeliveryWindowEnd,
			"deliverySlots":       []models.DeliverySlot{models.DeliverySlotAM, models.DeliverySlotPM},
			"firstDeliveryDate": delivery.FirstAllowedDateInWindow(
				cfg.DeliveryWindowStart, cfg.DeliveryWindowEnd),
		})
	}
}
