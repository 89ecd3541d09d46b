package alert

import (
	"time"

	ldomain "github.com/ridloal/lux-storefront/internal/ledger/domain"
	pdomain "github.com/ridloal/lux-storefront/internal/product/domain"
)

// LowStockThreshold is fixed: a product with fewer units is a candidate.
const LowStockThreshold = 4

func IsLowStock(p pdomain.Product) bool {
	return p.Quantity < LowStockThreshold
}

// Candidates returns the low-stock products in input order.
func Candidates(products []pdomain.Product) []pdomain.Product {
	out := make([]pdomain.Product, 0)
	for _, p := range products {
		if IsLowStock(p) {
			out = append(out, p)
		}
	}
	return out
}

// AdvisorProduct and AdvisorSale are plain copies of store records with
// timestamps rendered as RFC 3339 strings.
type AdvisorProduct struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	BP        float64 `json:"bp"`
	SP        float64 `json:"sp"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type AdvisorSale struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	SP        float64 `json:"sp"`
	BP        float64 `json:"bp"`
	Profit    float64 `json:"profit"`
	SoldAt    string  `json:"soldAt"`
}

type AdvisorRequest struct {
	Products []AdvisorProduct `json:"products"`
	Sales    []AdvisorSale    `json:"sales"`
}

type AdvisorAlert struct {
	ProductID string `json:"productId"`
	Message   string `json:"message"`
}

type AdvisorResponse struct {
	Alerts []AdvisorAlert `json:"alerts"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// BuildRequest copies candidates and sales into the advisor payload.
func BuildRequest(candidates []pdomain.Product, sales []ldomain.Sale) AdvisorRequest {
	req := AdvisorRequest{
		Products: make([]AdvisorProduct, 0, len(candidates)),
		Sales:    make([]AdvisorSale, 0, len(sales)),
	}
	for _, p := range candidates {
		req.Products = append(req.Products, AdvisorProduct{
			ID:        p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Color:     p.Color,
			Size:      p.Size,
			BP:        p.BP.InexactFloat64(),
			SP:        p.SP.InexactFloat64(),
			Quantity:  p.Quantity,
			ImageURL:  p.Image.URL,
			CreatedAt: formatTime(p.CreatedAt),
			UpdatedAt: formatTime(p.UpdatedAt),
		})
	}
	for _, s := range sales {
		req.Sales = append(req.Sales, AdvisorSale{
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			SP:        s.SP.InexactFloat64(),
			BP:        s.BP.InexactFloat64(),
			Profit:    s.Profit.InexactFloat64(),
			SoldAt:    formatTime(s.SoldAt),
		})
	}
	return req
}
