package ordercontroller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OmGaler/kp-pesach-orders/catalog"
	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/models"
	"github.com/OmGaler/kp-pesach-orders/orders"
)

type stubMail struct{}

func (stubMail) SendStoreOrderEmail(models.NormalizedOrder) error { return nil }
func (stubMail) SendCustomerConfirmationEmail(models.NormalizedOrder) (bool, error) {
	return false, nil
}

type stubSheet struct{}

func (stubSheet) AppendOrder(models.NormalizedOrder) error { return nil }

func testRouter(limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.StoreConfig{
		StoreName:           "Kosher Paradise",
		OrdersEmail:         "orders@example.com",
		DeliveryWindowStart: "2026-03-22",
		DeliveryWindowEnd:   "2026-04-03",
	}
	categories := []models.Category{
		{
			Name: "PASSOVER ESSENTIALS",
			Products: []models.Product{
				{ID: "prod-1", Category: "PASSOVER ESSENTIALS", Name: "Ready Made Charoses", Size: "250g"},
			},
		},
	}
	catalogFn := func() (*catalog.Snapshot, error) {
		return &catalog.Snapshot{
			Categories: categories,
			Products:   catalog.BuildProductIndex(categories),
		}, nil
	}
	svc := orders.NewService(cfg, catalogFn,
		orders.NewRateLimiter(limit, time.Minute), stubMail{}, stubSheet{})

	r := gin.New()
	r.POST("/orders", SubmitOrderHandler(svc))
	return r
}

const validBody = `{
	"items": [{"productId": "prod-1", "qty": 2}],
	"deliveryDate": "2026-03-26",
	"deliverySlot": "AM",
	"customerName": "Sample Customer",
	"phone": "020 7946 0958",
	"addressLine1": "1 Test Street",
	"postcode": "NW1 6XE"
}`

func postOrder(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "1.1.1.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitOrderHandler_Success(t *testing.T) {
	w := postOrder(t, testRouter(8), validBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		OK                bool   `json:"ok"`
		OrderRef          string `json:"orderRef"`
		CustomerEmailSent bool   `json:"customerEmailSent"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !resp.OK || !strings.HasPrefix(resp.OrderRef, "KP-") {
		t.Errorf("response = %+v", resp)
	}
	if resp.CustomerEmailSent {
		t.Error("no email was supplied, customerEmailSent should be false")
	}
}

func TestSubmitOrderHandler_MalformedJSON(t *testing.T) {
	w := postOrder(t, testRouter(8), "{not json")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON payload") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSubmitOrderHandler_ValidationFailure(t *testing.T) {
	body := strings.Replace(validBody, "2026-03-26", "2026-04-10", 1)
	w := postOrder(t, testRouter(8), body)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "deliveryDate") {
		t.Errorf("body %s should name the failing field", w.Body.String())
	}
}

func TestSubmitOrderHandler_RateLimited(t *testing.T) {
	r := testRouter(1)

	if w := postOrder(t, r, validBody); w.Code != http.StatusOK {
		t.Fatalf("first order: status = %d", w.Code)
	}

	w := postOrder(t, r, validBody)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
}
