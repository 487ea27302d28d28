package catalog

import (
	"sort"

	"github.com/aliasghar-tech/LoToo-Store/internal/domain"
)

// Sort modes for the product grid.
const (
	SortDefault   = "default" // catalog order, no reordering
	SortPriceAsc  = "low"
	SortPriceDesc = "high"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// FilterParams narrows the catalog for display. MaxPrice is inclusive;
// zero or negative means no price limit.
type FilterParams struct {
	Category string
	MaxPrice float64
	Sort     string
}

// Filter returns the filtered, sorted subsequence of products. The input
// slice is never mutated. Sorting is stable: products with equal prices keep
// their original relative order.
func Filter(products []domain.Product, p FilterParams) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, prod := range products {
		if p.MaxPrice > 0 && prod.Price > p.MaxPrice {
			continue
		}
		if p.Category != "" && p.Category != CategoryAll && prod.Category != p.Category {
			continue
		}
		out = append(out, prod)
	}

	switch p.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}

	return out
}

// Categories returns the distinct categories present in the catalog, in
// first-seen order. Values are the raw comparison strings; display
// capitalization is left to the templates.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var cats []string
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}
	return cats
}
