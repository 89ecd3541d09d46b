package catalog

import (
	"strings"

	"github.com/ridloal/lux-storefront/internal/product/domain"
)

// FilterOptions lists the distinct values shoppers can filter on, in order of
// first appearance.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Sizes      []string `json:"sizes"`
}

// Query narrows the storefront listing. Empty fields match everything.
type Query struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Color    string `form:"color"`
	Size     string `form:"size"`
}

func groupKey(p domain.Product) string {
	return strings.ToLower(p.Name + "-" + p.Category + "-" + p.Color + "-" + p.Size)
}

// GroupAndSum merges rows that share name, category, color and size
// (case-insensitive). The first row of each group in input order supplies the
// display fields; quantities are summed. Output keeps first-appearance order and
// the input slice is not modified.
func GroupAndSum(products []domain.Product) []domain.Product {
	index := make(map[string]int, len(products))
	grouped := make([]domain.Product, 0, len(products))
	for _, p := range products {
		key := groupKey(p)
		if i, ok := index[key]; ok {
			grouped[i].Quantity += p.Quantity
			continue
		}
		index[key] = len(grouped)
		grouped = append(grouped, p)
	}
	return grouped
}

func UniqueFilterOptions(products []domain.Product) FilterOptions {
	opts := FilterOptions{Categories: []string{}, Colors: []string{}, Sizes: []string{}}
	seenCategory := map[string]bool{}
	seenColor := map[string]bool{}
	seenSize := map[string]bool{}
	for _, p := range products {
		if !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			opts.Categories = append(opts.Categories, p.Category)
		}
		if !seenColor[p.Color] {
			seenColor[p.Color] = true
			opts.Colors = append(opts.Colors, p.Color)
		}
		if !seenSize[p.Size] {
			seenSize[p.Size] = true
			opts.Sizes = append(opts.Sizes, p.Size)
		}
	}
	return opts
}

// Filter keeps products whose name or category contains q.Search
// (case-insensitive) and whose category, color and size equal the requested ones.
func Filter(products []domain.Product, q Query) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Color != "" && p.Color != q.Color {
			continue
		}
		if q.Size != "" && p.Size != q.Size {
			continue
		}
		out = append(out, p)
	}
	return out
}
