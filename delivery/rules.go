// Package delivery holds the pure calendar rules for when orders can be
// delivered. All dates are ISO YYYY-MM-DD strings interpreted in UTC.
package delivery

import (
	"strings"
	"time"

	"github.com/OmGaler/kp-pesach-orders/models"
)

const isoDate = "2006-01-02"

// ParseISODate strictly parses YYYY-MM-DD. The round-trip format check
// rejects both loose spellings ("2026-3-2") and impossible calendar
// dates ("2026-02-30").
func ParseISODate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	t, err := time.Parse(isoDate, trimmed)
	if err != nil || t.Format(isoDate) != trimmed {
		return time.Time{}, false
	}
	return t, true
}

// Weekday returns 0=Sunday..6=Saturday, or -1 for an invalid date.
func Weekday(value string) int {
	t, ok := ParseISODate(value)
	if !ok {
		return -1
	}
	return int(t.Weekday())
}

func IsFriday(value string) bool {
	return Weekday(value) == 5
}

func IsSaturday(value string) bool {
	return Weekday(value) == 6
}

// IsDateAllowed reports whether deliveries run on the date. Saturday is
// never a delivery day.
func IsDateAllowed(value string) bool {
	weekday := Weekday(value)
	return weekday >= 0 && weekday != 6
}

// IsSlotAllowed applies the slot rules: Friday deliveries are morning
// only, every other allowed day takes AM or PM.
func IsSlotAllowed(date string, slot models.DeliverySlot) bool {
	if !IsDateAllowed(date) {
		return false
	}
	if IsFriday(date) {
		return slot == models.DeliverySlotAM
	}
	return slot == models.DeliverySlotAM || slot == models.DeliverySlotPM
}

// IsDateWithinWindow checks inclusive bounds; any unparseable part
// fails the check.
func IsDateWithinWindow(value, minDate, maxDate string) bool {
	t, ok := ParseISODate(value)
	minT, okMin := ParseISODate(minDate)
	maxT, okMax := ParseISODate(maxDate)
	if !ok || !okMin || !okMax {
		return false
	}
	return !t.Before(minT) && !t.After(maxT)
}

// FirstAllowedDateInWindow scans day by day from minDate for the first
// allowed delivery date. A malformed window (unparseable bounds or
// min > max) falls back to minDate unchanged.
func FirstAllowedDateInWindow(minDate, maxDate string) string {
	minT, okMin := ParseISODate(minDate)
	maxT, okMax := ParseISODate(maxDate)
	if !okMin || !okMax || minT.After(maxT) {
		return minDate
	}
	for cursor := minT; !cursor.After(maxT); cursor = cursor.AddDate(0, 0, 1) {
		iso := cursor.Format(isoDate)
		if IsDateAllowed(iso) {
			return iso
		}
	}
	return minDate
}
