package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidSale = errors.New("invalid sale")

// PriceScale is the number of decimal places the store keeps for money.
const PriceScale = 2

// Sale is written once, together with the matching stock decrement, and never
// changed afterwards. BP and SP are snapshots taken at the time of sale.
type Sale struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	SP        decimal.Decimal `json:"sp"`
	BP        decimal.Decimal `json:"bp"`
	Profit    decimal.Decimal `json:"profit"`
	SoldAt    time.Time       `json:"sold_at"`
}

// Revenue is sp * quantity.
func (s Sale) Revenue() decimal.Decimal {
	return s.SP.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

type SellRequest struct {
	ProductID        string          `json:"product_id" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required"`
	UnitSellingPrice decimal.Decimal `json:"unit_selling_price"`
}

func (r SellRequest) Validate() error {
	if r.ProductID == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidSale)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidSale)
	}
	if r.UnitSellingPrice.IsNegative() {
		return fmt.Errorf("%w: selling price must not be negative", ErrInvalidSale)
	}
	if !r.UnitSellingPrice.Equal(r.UnitSellingPrice.Truncate(PriceScale)) {
		return fmt.Errorf("%w: selling price must have at most %d decimal places", ErrInvalidSale, PriceScale)
	}
	return nil
}

// Profit computes (sp - bp) * quantity.
func Profit(sp, bp decimal.Decimal, quantity int) decimal.Decimal {
	return sp.Sub(bp).Mul(decimal.NewFromInt(int64(quantity)))
}

// StockSnapshot is the product state read inside the sell transaction.
type StockSnapshot struct {
	ProductID string
	Quantity  int
	BP        decimal.Decimal
}

// SaleWithProduct carries the product identity alongside a sale. The product
// fields are empty when the product has since been deleted.
type SaleWithProduct struct {
	Sale
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
	ProductColor    string `json:"product_color"`
	ProductSize     string `json:"product_size"`
}

// Label returns "name (color, size)", or the product id for deleted products.
func (s SaleWithProduct) Label() string {
	if s.ProductName == "" {
		return "Unknown product " + s.ProductID
	}
	return fmt.Sprintf("%s (%s, %s)", s.ProductName, s.ProductColor, s.ProductSize)
}
