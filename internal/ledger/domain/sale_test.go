package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSellRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SellRequest
		wantErr bool
	}{
		{"valid", SellRequest{ProductID: "p1", Quantity: 3, UnitSellingPrice: decimal.NewFromInt(150)}, false},
		{"free item", SellRequest{ProductID: "p1", Quantity: 1, UnitSellingPrice: decimal.Zero}, false},
		{"missing product", SellRequest{Quantity: 1}, true},
		{"zero quantity", SellRequest{ProductID: "p1"}, true},
		{"negative quantity", SellRequest{ProductID: "p1", Quantity: -2}, true},
		{"negative price", SellRequest{ProductID: "p1", Quantity: 1, UnitSellingPrice: decimal.NewFromInt(-1)}, true},
		{"cents", SellRequest{ProductID: "p1", Quantity: 3, UnitSellingPrice: decimal.RequireFromString("149.95")}, false},
		{"trailing zeros", SellRequest{ProductID: "p1", Quantity: 3, UnitSellingPrice: decimal.RequireFromString("149.9500")}, false},
		{"sub-cent price", SellRequest{ProductID: "p1", Quantity: 3, UnitSellingPrice: decimal.RequireFromString("0.005")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSale)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfit(t *testing.T) {
	assert.True(t, decimal.NewFromInt(150).Equal(Profit(decimal.NewFromInt(150), decimal.NewFromInt(100), 3)))
	assert.True(t, decimal.NewFromInt(-20).Equal(Profit(decimal.NewFromInt(90), decimal.NewFromInt(100), 2)))
	assert.True(t, decimal.RequireFromString("0.30").Equal(Profit(decimal.RequireFromString("0.30"), decimal.RequireFromString("0.20"), 3)))
}

func TestSaleWithProduct_Label(t *testing.T) {
	s := SaleWithProduct{Sale: Sale{ProductID: "p1"}, ProductName: "Linen Shirt", ProductColor: "White", ProductSize: "M"}
	assert.Equal(t, "Linen Shirt (White, M)", s.Label())
	assert.Equal(t, "Unknown product p1", SaleWithProduct{Sale: Sale{ProductID: "p1"}}.Label())
}

func TestSale_Revenue(t *testing.T) {
	s := Sale{Quantity: 3, SP: decimal.NewFromInt(150)}
	assert.True(t, decimal.NewFromInt(450).Equal(s.Revenue()))
}
