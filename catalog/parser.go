package catalog

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/OmGaler/kp-pesach-orders/models"
)

// FallbackCategory holds products that appear before any category
// header row.
const FallbackCategory = "MISCELLANEOUS"

var (
	categoryPattern = regexp.MustCompile(`^[A-Z0-9 &'()/+\-.,]+$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeIDChars   = regexp.MustCompile(`[^a-z0-9\-_]+`)
)

func isHeaderRow(product, size string) bool {
	return strings.EqualFold(product, "product") &&
		(size == "" || strings.EqualFold(size, "size"))
}

// isCategoryRow detects an uppercase header like "PASSOVER ESSENTIALS":
// no size cell, and the product cell is entirely uppercase tokens.
func isCategoryRow(product, size string) bool {
	if product == "" || size != "" {
		return false
	}
	return categoryPattern.MatchString(product) && product == strings.ToUpper(product)
}

// makeProductID derives a stable id from the composite key so parsing
// the same workbook twice yields identical ids.
func makeProductID(category, name, size string) string {
	base := strings.ToLower(category + "__" + name + "__" + size)
	base = whitespaceRun.ReplaceAllString(base, "-")
	sum := sha1.Sum([]byte(base))
	digest := hex.EncodeToString(sum[:])[:8]
	safe := unsafeIDChars.ReplaceAllString(base, "")
	return safe + "-" + digest
}

// ParseRows turns raw workbook rows into an ordered catalog. Rows that
// don't parse are skipped, never reported: the source sheets carry
// incidental junk and this is a cleansing pass, not a validator.
// Categories come out in first-appearance order; the product sort index
// counts across the whole sheet.
func ParseRows(rows [][]string) []models.Category {
	buckets := map[string][]models.Product{}
	var categoryOrder []string
	ensure := func(name string) {
		if _, ok := buckets[name]; !ok {
			buckets[name] = []models.Product{}
			categoryOrder = append(categoryOrder, name)
		}
	}

	active := FallbackCategory
	sortIndex := 0
	for _, row := range rows {
		product := cell(row, 0)
		size := cell(row, 1)
		if product == "" && size == "" {
			continue
		}
		if isHeaderRow(product, size) {
			continue
		}
		if isCategoryRow(product, size) {
			active = product
			ensure(active)
			continue
		}
		if product == "" {
			// size without a product is a malformed row
			continue
		}

		ensure(active)
		buckets[active] = append(buckets[active], models.Product{
			ID:        makeProductID(active, product, size),
			Category:  active,
			Name:      product,
			Size:      size,
			SortIndex: sortIndex,
		})
		sortIndex++
	}

	out := make([]models.Category, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		out = append(out, models.Category{Name: name, Products: buckets[name]})
	}
	return out
}

func cell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

// BuildProductIndex maps product id to product across the whole catalog.
func BuildProductIndex(categories []models.Category) map[string]models.Product {
	index := make(map[string]models.Product)
	for _, category := range categories {
		for _, product := range category.Products {
			index[product.ID] = product
		}
	}
	return index
}

// WithoutEmptyCategories filters categories that ended up with no
// products (a header row with nothing under it).
func WithoutEmptyCategories(categories []models.Category) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, category := range categories {
		if len(category.Products) > 0 {
			out = append(out, category)
		}
	}
	return out
}
