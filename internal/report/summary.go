package report

import (
	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/shopspring/decimal"
)

type BestSeller struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Summary struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TotalItems   int             `json:"total_items"`
	SalesCount   int             `json:"sales_count"`
	BestSeller   *BestSeller     `json:"best_seller"`
}

// Summarize totals revenue (sp * quantity), profit and items sold. The best
// seller is the "name (color, size)" with the most units; on a tie the group
// that appeared first in sales keeps the title.
func Summarize(sales []domain.SaleWithProduct) Summary {
	sum := Summary{TotalRevenue: decimal.Zero, TotalProfit: decimal.Zero, SalesCount: len(sales)}

	var order []string
	units := map[string]int{}
	for _, s := range sales {
		sum.TotalRevenue = sum.TotalRevenue.Add(s.Revenue())
		sum.TotalProfit = sum.TotalProfit.Add(s.Profit)
		sum.TotalItems += s.Quantity

		label := s.Label()
		if _, ok := units[label]; !ok {
			order = append(order, label)
		}
		units[label] += s.Quantity
	}

	best := BestSeller{}
	for _, label := range order {
		if units[label] > best.Quantity {
			best = BestSeller{Name: label, Quantity: units[label]}
		}
	}
	if best.Quantity > 0 {
		sum.BestSeller = &best
	}
	return sum
}
