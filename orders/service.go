package orders

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/models"
	"github.com/OmGaler/kp-pesach-orders/validation"
)

const refPrefix = "KP"

// MailSink delivers order emails. Kept as an interface so the
// sequencing logic is testable without SMTP access.
type MailSink interface {
	SendStoreOrderEmail(order models.NormalizedOrder) error
	// SendCustomerConfirmationEmail reports whether a confirmation was
	// actually sent (it is skipped when no email address was given).
	SendCustomerConfirmationEmail(order models.NormalizedOrder) (bool, error)
}

// SheetSink records the order in the tracking spreadsheet.
type SheetSink interface {
	AppendOrder(order models.NormalizedOrder) error
}

// Result is the success summary returned to the submission boundary.
type Result struct {
	OrderRef          string
	CustomerEmailSent bool
}

// Service sequences an order submission: rate limit, validation,
// product resolution, reference generation, then dispatch to the sinks.
type Service struct {
	store   config.StoreConfig
	catalog func() (*catalog.Snapshot, error)
	limiter *RateLimiter
	mail    MailSink
	sheet   SheetSink

	// seams for tests
	now     func() time.Time
	randInt func(n int) int
}

func NewService(
	store config.StoreConfig,
	catalogFn func() (*catalog.Snapshot, error),
	limiter *RateLimiter,
	mail MailSink,
	sheet SheetSink,
) *Service {
	return &Service{
		store:   store,
		catalog: catalogFn,
		limiter: limiter,
		mail:    mail,
		sheet:   sheet,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// ClientKey normalizes a client identity for rate limiting.
func ClientKey(ip string) string {
	if key := strings.TrimSpace(ip); key != "" {
		return key
	}
	return "unknown"
}

func (s *Service) makeOrderRef() string {
	now := s.now().UTC()
	return fmt.Sprintf("%s-%s-%04d", refPrefix, now.Format("20060102"), s.randInt(10000))
}

// Submit runs the whole pipeline for one submission. Validation and
// rate-limit failures happen before any side effect; a sink failure
// after that surfaces as a ProcessingError.
func (s *Service) Submit(sub models.OrderSubmission, clientIP string) (Result, error) {
	if allowed, retryAfter := s.limiter.Allow(ClientKey(clientIP)); !allowed {
		return Result{}, &RateLimitError{RetryAfter: retryAfter}
	}

	payload, err := validation.ValidateOrder(sub, s.store.DeliveryWindowStart, s.store.DeliveryWindowEnd)
	if err != nil {
		return Result{}, &ValidationError{Message: err.Error()}
	}

	snap, err := s.catalog()
	if err != nil {
		return Result{}, &ProcessingError{Err: err}
	}

	// Sum quantities for repeated product ids, keeping first-seen order.
	qtyByProduct := make(map[string]int)
	var productOrder []string
	for _, item := range payload.Items {
		if _, seen := qtyByProduct[item.ProductID]; !seen {
			productOrder = append(productOrder, item.ProductID)
		}
		qtyByProduct[item.ProductID] += item.Qty
	}

	items := make([]models.NormalizedOrderItem, 0, len(productOrder))
	for _, productID := range productOrder {
		product, ok := snap.Products[productID]
		if !ok {
			return Result{}, &ValidationError{Message: "unknown product selected: " + productID}
		}
		items = append(items, models.NormalizedOrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Size:      product.Size,
			Qty:       qtyByProduct[productID],
		})
	}

	order := models.NormalizedOrder{
		OrderRef:         s.makeOrderRef(),
		CreatedAt:        s.now().UTC(),
		Items:            items,
		DeliveryDate:     payload.DeliveryDate,
		DeliverySlot:     payload.DeliverySlot,
		AllowKitniyot:    payload.AllowKitniyot,
		AllowSubstitutes: payload.AllowSubstitutes,
		CustomerName:     payload.CustomerName,
		Phone:            payload.Phone,
		AddressLine1:     payload.AddressLine1,
		AddressLine2:     payload.AddressLine2,
		City:             payload.City,
		Postcode:         payload.Postcode,
		Email:            payload.Email,
		Notes:            payload.Notes,
	}

	if err := s.mail.SendStoreOrderEmail(order); err != nil {
		return Result{}, &ProcessingError{Err: err}
	}
	if err := s.sheet.AppendOrder(order); err != nil {
		return Result{}, &ProcessingError{Err: err}
	}
	customerEmailSent, err := s.mail.SendCustomerConfirmationEmail(order)
	if err != nil {
		return Result{}, &ProcessingError{Err: err}
	}

	return Result{OrderRef: order.OrderRef, CustomerEmailSent: customerEmailSent}, nil
}
