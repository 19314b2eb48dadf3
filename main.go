package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/mailer"
	"github.com/OmGaler/kp-pesach-orders/middleware"
	"github.com/OmGaler/kp-pesach-orders/models"
	"github.com/OmGaler/kp-pesach-orders/orders"
	"github.com/OmGaler/kp-pesach-orders/routes"
	"github.com/OmGaler/kp-pesach-orders/sheets"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	cache := catalog.NewCache(func() ([]models.Category, error) {
		return catalog.LoadFromWorkbook(cfg.CatalogPath)
	})

	// Warm the catalog so the first request doesn't pay for parsing
	if snap, err := cache.Get(); err != nil {
		log.Printf("⚠️ Catalog not loaded yet: %v", err)
	} else {
		log.Printf("✅ Catalog loaded: %d categories, %d products",
			len(snap.Categories), len(snap.Products))
	}

	limiter := orders.NewRateLimiter(cfg.RateLimitMax,
		time.Duration(cfg.RateLimitWindowSec)*time.Second)
	svc := orders.NewService(
		cfg,
		cache.Get,
		limiter,
		mailer.New(cfg),
		sheets.NewTracker(cfg.SheetPath, cfg.SheetTab),
	)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID)

	// Setup routes
	routes.SetupRoutes(r, cfg, cache, svc)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
