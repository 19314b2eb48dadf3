package models

// Product is one orderable line of the catalog. Products are immutable
// after catalog load; the ID is derived from category+name+size so
// re-importing the same workbook yields the same ids.
type Product struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Size      string `json:"size,omitempty"`
	SortIndex int    `json:"sortIndex"`
}

type Category struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}
