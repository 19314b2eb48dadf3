package ordercontroller

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/models"
	"github.com/OmGaler/kp-pesach-orders/orders"
)

// SubmitOrderHandler accepts an order submission and maps each failure
// variant to its transport status: validation 400, rate limit 429 with
// Retry-After, processing 502.
func SubmitOrderHandler(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.OrderSubmission
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid JSON payload"})
			return
		}

		result, err := svc.Submit(sub, clientIP(c))
		if err != nil {
			var validationErr *orders.ValidationError
			var rateErr *orders.RateLimitError
			var processingErr *orders.ProcessingError
			switch {
			case errors.As(err, &validationErr):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": validationErr.Error()})
			case errors.As(err, &rateErr):
				c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(rateErr.RetryAfter)))
				c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": rateErr.Error()})
			case errors.As(err, &processingErr):
				c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": processingErr.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Unexpected server error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":                true,
			"orderRef":          result.OrderRef,
			"customerEmailSent": result.CustomerEmailSent,
		})
	}
}

// clientIP prefers the proxy-set headers so rate limiting keys on the
// real client, not the load balancer.
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
