// Package validation turns a raw order submission into a validated
// order intent. Rules run in a fixed field order and only the first
// failure is reported, named by the field that broke it.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/OmGaler/kp-pesach-orders/delivery"
	"github.com/OmGaler/kp-pesach-orders/models"
)

const (
	minQty = 1
	maxQty = 99
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\-().]`)
	// +44 or a leading 0, then 9-10 digits once separators are stripped
	ukPhonePattern = regexp.MustCompile(`^(\+44|0)\d{9,10}$`)
	// standard outward + inward UK postcode
	ukPostcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}$`)
)

// Error names the field whose rule failed.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

func fail(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// ValidateOrder checks a submission against the schema and the delivery
// rules for the given window, returning a normalized intent. The input
// is never mutated; all strings are trimmed before any check and
// blank optional fields normalize to absent.
func ValidateOrder(sub models.OrderSubmission, minDate, maxDate string) (models.OrderPayload, error) {
	var out models.OrderPayload

	if len(sub.Items) == 0 {
		return out, fail("items", "at least one item is required")
	}
	items := make([]models.CartItemInput, 0, len(sub.Items))
	for i, item := range sub.Items {
		productID := strings.TrimSpace(item.ProductID)
		if productID == "" {
			return out, fail(fmt.Sprintf("items[%d].productId", i), "product id is required")
		}
		if item.Qty < minQty || item.Qty > maxQty {
			return out, fail(fmt.Sprintf("items[%d].qty", i),
				fmt.Sprintf("quantity must be between %d and %d", minQty, maxQty))
		}
		items = append(items, models.CartItemInput{ProductID: productID, Qty: item.Qty})
	}

	deliveryDate := strings.TrimSpace(sub.DeliveryDate)
	if deliveryDate == "" {
		return out, fail("deliveryDate", "delivery date is required")
	}
	if !delivery.IsDateWithinWindow(deliveryDate, minDate, maxDate) {
		return out, fail("deliveryDate",
			fmt.Sprintf("must be between %s and %s", minDate, maxDate))
	}
	if !delivery.IsDateAllowed(deliveryDate) {
		return out, fail("deliveryDate", "deliveries do not run on Saturdays")
	}

	slot := models.DeliverySlot(strings.TrimSpace(sub.DeliverySlot))
	if slot != models.DeliverySlotAM && slot != models.DeliverySlotPM {
		return out, fail("deliverySlot", "must be AM or PM")
	}
	if !delivery.IsSlotAllowed(deliveryDate, slot) {
		return out, fail("deliverySlot", "Friday deliveries are AM only")
	}

	allowKitniyot := true
	if sub.AllowKitniyot != nil {
		allowKitniyot = *sub.AllowKitniyot
	}
	allowSubstitutes := true
	if sub.AllowSubstitutes != nil {
		allowSubstitutes = *sub.AllowSubstitutes
	}

	customerName := strings.TrimSpace(sub.CustomerName)
	if len(customerName) < 2 {
		return out, fail("customerName", "name is too short")
	}
	if len(strings.Fields(customerName)) < 2 {
		return out, fail("customerName", "first and last name are required")
	}

	phone := strings.TrimSpace(sub.Phone)
	if !ukPhonePattern.MatchString(phoneSeparators.ReplaceAllString(phone, "")) {
		return out, fail("phone", "must be a valid UK phone number")
	}

	addressLine1 := strings.TrimSpace(sub.AddressLine1)
	if len(addressLine1) < 3 {
		return out, fail("addressLine1", "address is too short")
	}

	addressLine2 := strings.TrimSpace(sub.AddressLine2)
	city := strings.TrimSpace(sub.City)

	postcode := strings.TrimSpace(sub.Postcode)
	if postcode != "" && !ukPostcodePattern.MatchString(postcode) {
		return out, fail("postcode", "must be a valid UK postcode")
	}

	email := strings.TrimSpace(sub.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return out, fail("email", "must be a valid email address")
		}
	}

	notes := strings.TrimSpace(sub.Notes)

	out = models.OrderPayload{
		Items:            items,
		DeliveryDate:     deliveryDate,
		DeliverySlot:     slot,
		AllowKitniyot:    allowKitniyot,
		AllowSubstitutes: allowSubstitutes,
		CustomerName:     customerName,
		Phone:            phone,
		AddressLine1:     addressLine1,
		AddressLine2:     addressLine2,
		City:             city,
		Postcode:         postcode,
		Email:            email,
		Notes:            notes,
	}
	return out, nil
}
