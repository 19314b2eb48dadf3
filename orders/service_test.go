package orders

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/models"
)

type fakeMail struct {
	storeCalls int
	custCalls  int
	storeErr   error
	custSent   bool
	custErr    error
	lastOrder  models.NormalizedOrder
}

func (f *fakeMail) SendStoreOrderEmail(order models.NormalizedOrder) error {
	f.storeCalls++
	f.lastOrder = order
	return f.storeErr
}

func (f *fakeMail) SendCustomerConfirmationEmail(order models.NormalizedOrder) (bool, error) {
	f.custCalls++
	return f.custSent, f.custErr
}

type fakeSheet struct {
	calls int
	err   error
}

func (f *fakeSheet) AppendOrder(order models.NormalizedOrder) error {
	f.calls++
	return f.err
}

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		StoreName:           "Kosher Paradise",
		OrdersEmail:         "orders@example.com",
		DeliveryWindowStart: "2026-03-22",
		DeliveryWindowEnd:   "2026-04-03",
	}
}

func serviceSnapshot() *catalog.Snapshot {
	categories := []models.Category{
		{
			Name: "PASSOVER ESSENTIALS",
			Products: []models.Product{
				{ID: "prod-1", Category: "PASSOVER ESSENTIALS", Name: "Ready Made Charoses", Size: "250g"},
				{ID: "prod-2", Category: "PASSOVER ESSENTIALS", Name: "Chrayne"},
			},
		},
	}
	return &catalog.Snapshot{
		Categories: categories,
		Products:   catalog.BuildProductIndex(categories),
	}
}

func validSubmission() models.OrderSubmission {
	return models.OrderSubmission{
		Items:        []models.CartItemInput{{ProductID: "prod-1", Qty: 2}},
		DeliveryDate: "2026-03-26",
		DeliverySlot: "AM",
		CustomerName: "Sample Customer",
		Phone:        "020 7946 0958",
		AddressLine1: "1 Test Street",
		Postcode:     "NW1 6XE",
		Email:        "sample@example.com",
	}
}

func newTestService(mail *fakeMail, sheet *fakeSheet) *Service {
	svc := NewService(
		testStoreConfig(),
		func() (*catalog.Snapshot, error) { return serviceSnapshot(), nil },
		NewRateLimiter(8, time.Minute),
		mail,
		sheet,
	)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 22, 10, 30, 0, 0, time.UTC)
	}
	svc.randInt = func(n int) int { return 7 }
	return svc
}

func TestSubmit_Success(t *testing.T) {
	mail := &fakeMail{custSent: true}
	sheet := &fakeSheet{}
	svc := newTestService(mail, sheet)

	result, err := svc.Submit(validSubmission(), "1.1.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.OrderRef != "KP-20260322-0007" {
		t.Errorf("orderRef = %q", result.OrderRef)
	}
	if !result.CustomerEmailSent {
		t.Error("customerEmailSent should be true")
	}
	if mail.storeCalls != 1 || sheet.calls != 1 || mail.custCalls != 1 {
		t.Errorf("sink calls = %d/%d/%d, want 1/1/1", mail.storeCalls, sheet.calls, mail.custCalls)
	}
	if mail.lastOrder.Items[0].Name != "Ready Made Charoses" {
		t.Errorf("item name not resolved from catalog: %+v", mail.lastOrder.Items)
	}
}

func TestSubmit_ReferenceFormat(t *testing.T) {
	mail := &fakeMail{}
	svc := newTestService(mail, &fakeSheet{})
	svc.randInt = func(n int) int { return 3 }

	result, err := svc.Submit(validSubmission(), "1.1.1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !regexp.MustCompile(`^KP-\d{8}-\d{4}$`).MatchString(result.OrderRef) {
		t.Errorf("orderRef %q does not match KP-YYYYMMDD-NNNN", result.OrderRef)
	}
}

func TestSubmit_DeduplicatesRepeatedProducts(t *testing.T) {
	mail := &fakeMail{}
	svc := newTestService(mail, &fakeSheet{})

	sub := validSubmission()
	sub.Items = []models.CartItemInput{
		{ProductID: "prod-1", Qty: 2},
		{ProductID: "prod-2", Qty: 1},
		{ProductID: "prod-1", Qty: 3},
	}

	if _, err := svc.Submit(sub, "1.1.1.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := mail.lastOrder.Items
	if len(items) != 2 {
		t.Fatalf("items = %v, want 2 lines", items)
	}
	if items[0].ProductID != "prod-1" || items[0].Qty != 5 {
		t.Errorf("first line = %+v, want prod-1 x5", items[0])
	}
	if items[1].ProductID != "prod-2" || items[1].Qty != 1 {
		t.Errorf("second line = %+v, want prod-2 x1", items[1])
	}
}

func TestSubmit_ResolvesItemsFromSnapshotIndex(t *testing.T) {
	// The snapshot's prebuilt index is the lookup source: a product
	// present only there still resolves, with no per-order rebuild
	// from the category tree.
	mail := &fakeMail{}
	svc := newTestService(mail, &fakeSheet{})
	svc.catalog = func() (*catalog.Snapshot, error) {
		return &catalog.Snapshot{
			Products: map[string]models.Product{
				"prod-x": {ID: "prod-x", Category: "PASSOVER ESSENTIALS", Name: "Shmura Matzo", Size: "1kg"},
			},
		}, nil
	}

	sub := validSubmission()
	sub.Items = []models.CartItemInput{{ProductID: "prod-x", Qty: 1}}

	if _, err := svc.Submit(sub, "1.1.1.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mail.lastOrder.Items[0].Name != "Shmura Matzo" {
		t.Errorf("item = %+v, want name resolved from the snapshot index", mail.lastOrder.Items[0])
	}
}

func TestSubmit_UnknownProductFailsBeforeSinks(t *testing.T) {
	mail := &fakeMail{}
	sheet := &fakeSheet{}
	svc := newTestService(mail, sheet)

	sub := validSubmission()
	sub.Items = []models.CartItemInput{{ProductID: "missing-product", Qty: 1}}

	_, err := svc.Submit(sub, "2.2.2.2")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if mail.storeCalls != 0 || sheet.calls != 0 || mail.custCalls != 0 {
		t.Error("sinks were reached for an invalid order")
	}
}

func TestSubmit_InvalidPayloadFailsBeforeSinks(t *testing.T) {
	mail := &fakeMail{}
	sheet := &fakeSheet{}
	svc := newTestService(mail, sheet)

	sub := validSubmission()
	sub.DeliveryDate = "2026-04-10"

	_, err := svc.Submit(sub, "2.2.2.2")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if mail.storeCalls != 0 || sheet.calls != 0 {
		t.Error("sinks were reached for an invalid order")
	}
}

func TestSubmit_SinkFailuresAreProcessingErrors(t *testing.T) {
	t.Run("store email fails", func(t *testing.T) {
		mail := &fakeMail{storeErr: errors.New("smtp down")}
		sheet := &fakeSheet{}
		svc := newTestService(mail, sheet)

		_, err := svc.Submit(validSubmission(), "3.3.3.3")
		var processingErr *ProcessingError
		if !errors.As(err, &processingErr) {
			t.Fatalf("error = %v, want ProcessingError", err)
		}
		if sheet.calls != 0 {
			t.Error("sheet should not be written after the store email fails")
		}
	})

	t.Run("sheet append fails", func(t *testing.T) {
		mail := &fakeMail{}
		svc := newTestService(mail, &fakeSheet{err: errors.New("disk full")})

		_, err := svc.Submit(validSubmission(), "3.3.3.3")
		var processingErr *ProcessingError
		if !errors.As(err, &processingErr) {
			t.Fatalf("error = %v, want ProcessingError", err)
		}
		if mail.custCalls != 0 {
			t.Error("confirmation should not be sent after the sheet append fails")
		}
	})
}

func TestSubmit_RateLimited(t *testing.T) {
	mail := &fakeMail{}
	svc := newTestService(mail, &fakeSheet{})
	svc.limiter = NewRateLimiter(1, time.Minute)

	if _, err := svc.Submit(validSubmission(), "4.4.4.4"); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	_, err := svc.Submit(validSubmission(), "4.4.4.4")
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("error = %v, want RateLimitError", err)
	}
	if rateErr.RetryAfter <= 0 {
		t.Errorf("retryAfter = %v, want positive", rateErr.RetryAfter)
	}
	if mail.storeCalls != 1 {
		t.Errorf("store email sent %d times, want 1", mail.storeCalls)
	}
}

func TestClientKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.2.3.4", "1.2.3.4"},
		{" 1.2.3.4 ", "1.2.3.4"},
		{"", "unknown"},
		{"   ", "unknown"},
	}
	for _, tc := range cases {
		if got := ClientKey(tc.in); got != tc.want {
			t.Errorf("ClientKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
