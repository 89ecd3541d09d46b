package report

import (
	"testing"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sold(name, color, size string, qty int, sp, bp int64) domain.SaleWithProduct {
	spD, bpD := decimal.NewFromInt(sp), decimal.NewFromInt(bp)
	return domain.SaleWithProduct{
		Sale: domain.Sale{
			ProductID: name + color + size, Quantity: qty, SP: spD, BP: bpD,
			Profit: domain.Profit(spD, bpD, qty),
		},
		ProductName: name, ProductColor: color, ProductSize: size,
	}
}

func TestSummarize(t *testing.T) {
	sales := []domain.SaleWithProduct{
		sold("Linen Shirt", "White", "M", 3, 150, 100),
		sold("Denim Jacket", "Blue", "L", 1, 300, 200),
		sold("Linen Shirt", "White", "M", 2, 140, 100),
	}
	sum := Summarize(sales)

	assert.True(t, decimal.NewFromInt(1030).Equal(sum.TotalRevenue), sum.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(330).Equal(sum.TotalProfit), sum.TotalProfit.String())
	assert.Equal(t, 6, sum.TotalItems)
	assert.Equal(t, 3, sum.SalesCount)
	require.NotNil(t, sum.BestSeller)
	assert.Equal(t, BestSeller{Name: "Linen Shirt (White, M)", Quantity: 5}, *sum.BestSeller)
}

func TestSummarize_TieKeepsFirstGroup(t *testing.T) {
	sales := []domain.SaleWithProduct{
		sold("Denim Jacket", "Blue", "L", 2, 300, 200),
		sold("Linen Shirt", "White", "M", 1, 150, 100),
		sold("Linen Shirt", "White", "M", 1, 150, 100),
	}
	sum := Summarize(sales)
	require.NotNil(t, sum.BestSeller)
	assert.Equal(t, "Denim Jacket (Blue, L)", sum.BestSeller.Name)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	assert.True(t, sum.TotalRevenue.IsZero())
	assert.True(t, sum.TotalProfit.IsZero())
	assert.Zero(t, sum.TotalItems)
	assert.Nil(t, sum.BestSeller)
}
