package models

import "time"

type DeliverySlot string

const (
	DeliverySlotAM DeliverySlot = "AM"
	DeliverySlotPM DeliverySlot = "PM"
)

// CartItemInput is one line of a raw order submission.
type CartItemInput struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderSubmission is the wire payload for POST /orders before any
// validation has run. The preference flags are pointers so an omitted
// flag can default to true.
type OrderSubmission struct {
	Items            []CartItemInput `json:"items"`
	DeliveryDate     string          `json:"deliveryDate"`
	DeliverySlot     string          `json:"deliverySlot"`
	AllowKitniyot    *bool           `json:"allowKitniyot"`
	AllowSubstitutes *bool           `json:"allowSubstitutes"`
	CustomerName     string          `json:"customerName"`
	Phone            string          `json:"phone"`
	AddressLine1     string          `json:"addressLine1"`
	AddressLine2     string          `json:"addressLine2"`
	City             string          `json:"city"`
	Postcode         string          `json:"postcode"`
	Email            string          `json:"email"`
	Notes            string          `json:"notes"`
}

// OrderPayload is a validated order intent: by construction it satisfies
// both the schema and the delivery rules. Optional strings are "" when
// not provided.
type OrderPayload struct {
	Items            []CartItemInput `json:"items"`
	DeliveryDate     string          `json:"deliveryDate"`
	DeliverySlot     DeliverySlot    `json:"deliverySlot"`
	AllowKitniyot    bool            `json:"allowKitniyot"`
	AllowSubstitutes bool            `json:"allowSubstitutes"`
	CustomerName     string          `json:"customerName"`
	Phone            string          `json:"phone"`
	AddressLine1     string          `json:"addressLine1"`
	AddressLine2     string          `json:"addressLine2,omitempty"`
	City             string          `json:"city,omitempty"`
	Postcode         string          `json:"postcode,omitempty"`
	Email            string          `json:"email,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// NormalizedOrderItem is an order line after catalog resolution:
// quantities for repeated product ids are summed and name/size come
// from the catalog, not the client.
type NormalizedOrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	Qty       int    `json:"qty"`
}

// NormalizedOrder is what the sinks receive. It is created once per
// successful submission and never modified afterwards.
type NormalizedOrder struct {
	OrderRef         string                `json:"orderRef"`
	CreatedAt        time.Time             `json:"createdAt"`
	Items            []NormalizedOrderItem `json:"items"`
	DeliveryDate     string                `json:"deliveryDate"`
	DeliverySlot     DeliverySlot          `json:"deliverySlot"`
	AllowKitniyot    bool                  `json:"allowKitniyot"`
	AllowSubstitutes bool                  `json:"allowSubstitutes"`
	CustomerName     string                `json:"customerName"`
	Phone            string                `json:"phone"`
	AddressLine1     string                `json:"addressLine1"`
	AddressLine2     string                `json:"addressLine2,omitempty"`
	City             string                `json:"city,omitempty"`
	Postcode         string                `json:"postcode,omitempty"`
	Email            string                `json:"email,omitempty"`
	Notes            string                `json:"notes,omitempty"`
}
