// Package mailer sends the store notification and customer
// confirmation emails over SMTP.
package mailer

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/OmGaler/kp-pesach-orders/config"
	"github.com/OmGaler/kp-pesach-orders/models"
)

type Mailer struct {
	cfg config.StoreConfig
}

func New(cfg config.StoreConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) dialer() *gomail.Dialer {
	return gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
}

func formatAddress(order models.NormalizedOrder) string {
	parts := []string{order.AddressLine1}
	for _, part := range []string{order.AddressLine2, order.City, order.Postcode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func formatItems(order models.NormalizedOrder) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		line := "- " + item.Name
		if item.Size != "" {
			line += " (" + item.Size + ")"
		}
		lines = append(lines, fmt.Sprintf("%s x %d", line, item.Qty))
	}
	return strings.Join(lines, "\n")
}

func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// SendStoreOrderEmail notifies the store of every new order.
func (m *Mailer) SendStoreOrderEmail(order models.NormalizedOrder) error {
	body := strings.Join([]string{
		"Order Ref: " + order.OrderRef,
		"Placed: " + order.CreatedAt.Format(time.RFC3339),
		"",
		"Delivery: " + order.DeliveryDate + " " + string(order.DeliverySlot),
		"",
		"Customer:",
		"Name: " + order.CustomerName,
		"Phone: " + order.Phone,
		"Email: " + valueOr(order.Email, "(not provided)"),
		"Address: " + formatAddress(order),
		"",
		"Items:",
		formatItems(order),
		"",
		fmt.Sprintf("Total item lines: %d", len(order.Items)),
		"Notes: " + valueOr(order.Notes, "(none)"),
	}, "\n")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", m.cfg.OrdersEmail)
	msg.SetHeader("Subject", fmt.Sprintf("%s Pesach Order %s", m.cfg.StoreName, order.OrderRef))
	if order.Email != "" {
		msg.SetHeader("Reply-To", order.Email)
	}
	msg.SetBody("text/plain", body)

	return m.dialer().DialAndSend(msg)
}

// SendCustomerConfirmationEmail sends a confirmation when the customer
// left an address; the return value reports whether one went out.
func (m *Mailer) SendCustomerConfirmationEmail(order models.NormalizedOrder) (bool, error) {
	if order.Email == "" {
		return false, nil
	}

	body := strings.Join([]string{
		fmt.Sprintf("Thank you for your order with %s.", m.cfg.StoreName),
		"",
		"Order Ref: " + order.OrderRef,
		"Requested delivery: " + order.DeliveryDate + " " + string(order.DeliverySlot),
		"",
		"Items:",
		formatItems(order),
		"",
		fmt.Sprintf("If anything needs changing, contact us at %s or %s.",
			m.cfg.ContactPhone, m.cfg.ContactEmail),
	}, "\n")

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", order.Email)
	msg.SetHeader("Subject", fmt.Sprintf("%s order confirmation (%s)", m.cfg.StoreName, order.OrderRef))
	msg.SetHeader("Reply-To", m.cfg.OrdersEmail)
	msg.SetBody("text/plain", body)

	if err := m.dialer().DialAndSend(msg); err != nil {
		return false, err
	}
	return true, nil
}
