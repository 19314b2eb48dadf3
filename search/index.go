package search

import (
	"strings"

	"github.com/OmGaler/kp-pesach-orders/models"
)

// Entry is the denormalized search view of one product: its folded
// haystack plus per-token skeletons, computed once at index build.
type Entry struct {
	CategoryName   string
	Product        models.Product
	Haystack       string
	Tokens         []string
	TokenSkeletons []string
}

// Index is read-only once built. Rebuild it whenever the catalog
// snapshot changes.
type Index struct {
	Entries []Entry
}

// BuildIndex folds every product up front so repeated queries only pay
// for scoring.
func BuildIndex(categories []models.Category) *Index {
	index := &Index{}
	for _, category := range categories {
		for _, product := range category.Products {
			haystack := Fold(product.Name + " " + product.Size)
			tokens := strings.Fields(haystack)
			skeletons := make([]string, 0, len(tokens))
			for _, token := range tokens {
				if skeleton := Skeleton(token); skeleton != "" {
					skeletons = append(skeletons, skeleton)
				}
			}
			index.Entries = append(index.Entries, Entry{
				CategoryName:   category.Name,
				Product:        product,
				Haystack:       haystack,
				Tokens:         tokens,
				TokenSkeletons: skeletons,
			})
		}
	}
	return index
}
