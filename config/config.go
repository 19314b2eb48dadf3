package config

import (
	"os"
	"strconv"
	"strings"
)

// StoreConfig collects everything the service reads from the
// environment. godotenv is loaded once in main before this runs.
type StoreConfig struct {
	StoreName    string
	OrdersEmail  string
	ContactPhone string
	ContactEmail string
	OpeningTimes []string

	// Delivery window bounds, inclusive ISO dates.
	DeliveryWindowStart string
	DeliveryWindowEnd   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CatalogPath string
	SheetPath   string
	SheetTab    string

	RateLimitMax       int
	RateLimitWindowSec int
}

// Load reads the store configuration with the seasonal defaults.
func Load() StoreConfig {
	return StoreConfig{
		StoreName:    getenv("STORE_NAME", "Kosher Paradise"),
		OrdersEmail:  getenv("ORDERS_EMAIL", "orders@example.com"),
		ContactPhone: getenv("CONTACT_PHONE", "0208 455 2454"),
		ContactEmail: getenv("CONTACT_EMAIL", "orders@kosherparadise.co.uk"),
		OpeningTimes: getenvList("OPENING_TIMES",
			"Sun-Thu: 08:00-20:00",
			"Fri: 08:00-14:00",
			"Motzai Shabbos: 20:30-23:00",
		),

		DeliveryWindowStart: getenv("DELIVERY_WINDOW_START", "2026-03-22"),
		DeliveryWindowEnd:   getenv("DELIVERY_WINDOW_END", "2026-04-03"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		CatalogPath: os.Getenv("CATALOG_PATH"),
		SheetPath:   getenv("ORDERS_SHEET_PATH", "data/orders.xlsx"),
		SheetTab:    getenv("ORDERS_SHEET_TAB", "Sheet1"),

		RateLimitMax:       getenvInt("RATE_LIMIT_MAX", 8),
		RateLimitWindowSec: getenvInt("RATE_LIMIT_WINDOW_SEC", 60),
	}
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return fallback
}

// getenvList splits a "|"-separated env value, falling back to the
// given defaults.
func getenvList(key string, fallback ...string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
