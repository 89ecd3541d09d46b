package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

type Image struct {
	URL   string `json:"url"`
	Hint  string `json:"hint"`
	RefID string `json:"ref_id,omitempty"` // media host reference, needed to delete the image
}

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	BP        decimal.Decimal `json:"bp"` // buying price per unit
	SP        decimal.Decimal `json:"sp"` // selling price per unit
	Quantity  int             `json:"quantity"`
	Image     Image           `json:"image"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Label is the human-readable identity used by alerts and reports.
func (p Product) Label() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.Color, p.Size)
}

type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Color    string          `json:"color" binding:"required"`
	Size     string          `json:"size" binding:"required"`
	BP       decimal.Decimal `json:"bp"`
	SP       decimal.Decimal `json:"sp"`
	Quantity int             `json:"quantity"`
	Image    Image           `json:"image"`
}

// UpdateProductRequest edits display and pricing fields. Quantity is not
// editable here: stock moves only through AdjustStockRequest deltas or sales.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Color    *string          `json:"color,omitempty"`
	Size     *string          `json:"size,omitempty"`
	BP       *decimal.Decimal `json:"bp,omitempty"`
	SP       *decimal.Decimal `json:"sp,omitempty"`
	Image    *Image           `json:"image,omitempty"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type UploadImageRequest struct {
	File string `json:"file" binding:"required"` // data URI
}

// Fingerprint summarises the catalog so pollers can tell when it changed.
type Fingerprint struct {
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"last_updated"`
}

func (r *CreateProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Color = strings.TrimSpace(r.Color)
	r.Size = strings.TrimSpace(r.Size)
}

// PriceScale is the number of decimal places the store keeps for money.
const PriceScale = 2

func hasPriceScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(PriceScale))
}

// Validate applies the admin form rules to a full product.
func Validate(p Product) error {
	switch {
	case len([]rune(p.Name)) < 2:
		return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidProduct)
	case len([]rune(p.Category)) < 2:
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case len([]rune(p.Color)) < 2:
		return fmt.Errorf("%w: color is required", ErrInvalidProduct)
	case len([]rune(p.Size)) < 1:
		return fmt.Errorf("%w: size is required", ErrInvalidProduct)
	case p.BP.IsNegative():
		return fmt.Errorf("%w: buying price must not be negative", ErrInvalidProduct)
	case p.SP.IsNegative():
		return fmt.Errorf("%w: selling price must not be negative", ErrInvalidProduct)
	case !hasPriceScale(p.BP):
		return fmt.Errorf("%w: buying price must have at most %d decimal places", ErrInvalidProduct, PriceScale)
	case !hasPriceScale(p.SP):
		return fmt.Errorf("%w: selling price must have at most %d decimal places", ErrInvalidProduct, PriceScale)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	}
	return nil
}

// Apply copies the set fields of req onto p.
func (req UpdateProductRequest) Apply(p *Product) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Color != nil {
		p.Color = strings.TrimSpace(*req.Color)
	}
	if req.Size != nil {
		p.Size = strings.TrimSpace(*req.Size)
	}
	if req.BP != nil {
		p.BP = *req.BP
	}
	if req.SP != nil {
		p.SP = *req.SP
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
}
