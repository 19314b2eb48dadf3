// Package sheets appends normalized orders to the tracking workbook
// the store works from during the season.
package sheets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/OmGaler/kp-pesach-orders/models"
)

var dashboardHeaders = []string{
	"Order ID",
	"Created At",
	"Customer Name",
	"Delivery Date",
	"Status",
	"Delivery Slot",
	"Allow Kitniyot",
	"Allow Substitutes",
	"Total Items",
	"Phone Number",
	"Address",
	"Notes",
	"Order Details",
}

// Tracker writes one row per order, creating the workbook with the
// dashboard headers when it doesn't exist yet.
type Tracker struct {
	path     string
	tabTitle string
}

func NewTracker(path, tabTitle string) *Tracker {
	if tabTitle == "" {
		tabTitle = "Sheet1"
	}
	return &Tracker{path: path, tabTitle: tabTitle}
}

// AppendOrder records the order and saves the workbook. New orders go
// in with status NEW; the store updates the column by hand.
func (t *Tracker) AppendOrder(order models.NormalizedOrder) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return err
	}
	file, sheet, err := t.openOrCreate()
	if err != nil {
		return err
	}

	row := sheet.AddRow()
	row.AddCell().SetValue(order.OrderRef)
	row.AddCell().SetValue(order.CreatedAt.Format(time.RFC3339))
	row.AddCell().SetValue(order.CustomerName)
	row.AddCell().SetValue(order.DeliveryDate)
	row.AddCell().SetValue("NEW")
	row.AddCell().SetValue(string(order.DeliverySlot))
	row.AddCell().SetValue(yesNo(order.AllowKitniyot))
	row.AddCell().SetValue(yesNo(order.AllowSubstitutes))
	row.AddCell().SetValue(totalItems(order))
	row.AddCell().SetValue(order.Phone)
	row.AddCell().SetValue(formatAddress(order))
	row.AddCell().SetValue(order.Notes)
	row.AddCell().SetValue(orderDetails(order))

	return file.Save(t.path)
}

func (t *Tracker) openOrCreate() (*xlsx.File, *xlsx.Sheet, error) {
	if _, err := os.Stat(t.path); err == nil {
		file, err := xlsx.OpenFile(t.path)
		if err != nil {
			return nil, nil, err
		}
		for _, sheet := range file.Sheets {
			if sheet.Name == t.tabTitle {
				return file, sheet, nil
			}
		}
		sheet, err := file.AddSheet(t.tabTitle)
		if err != nil {
			return nil, nil, err
		}
		writeHeaders(sheet)
		return file, sheet, nil
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(t.tabTitle)
	if err != nil {
		return nil, nil, err
	}
	writeHeaders(sheet)
	return file, sheet, nil
}

func writeHeaders(sheet *xlsx.Sheet) {
	row := sheet.AddRow()
	for _, header := range dashboardHeaders {
		row.AddCell().SetValue(header)
	}
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func totalItems(order models.NormalizedOrder) int {
	total := 0
	for _, item := range order.Items {
		total += item.Qty
	}
	return total
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

func orderDetails(order models.NormalizedOrder) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		line := item.Name
		if item.Size != "" {
			line += " (" + item.Size + ")"
		}
		lines = append(lines, fmt.Sprintf("%s x %d", line, item.Qty))
	}
	return strings.Join(lines, "; ")
}
