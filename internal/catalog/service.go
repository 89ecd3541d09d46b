package catalog

import (
	"context"

	"github.com/ridloal/lux-storefront/internal/platform/logger"
	"github.com/ridloal/lux-storefront/internal/product/domain"
)

// ProductReader is the read side of the product store.
type ProductReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// Page is one storefront listing: grouped products after filtering, plus the
// filter options derived from the whole grouped catalog.
type Page struct {
	Products []domain.Product `json:"products"`
	Options  FilterOptions    `json:"options"`
	Total    int              `json:"total"`
}

type CatalogService interface {
	Browse(ctx context.Context, q Query) Page
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

type catalogServiceImpl struct {
	products ProductReader
}

func NewCatalogService(products ProductReader) CatalogService {
	return &catalogServiceImpl{products: products}
}

// Browse never fails: a store error yields an empty page and is logged.
func (s *catalogServiceImpl) Browse(ctx context.Context, q Query) Page {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		logger.Error("Svc.Browse: could not list products", err)
		return emptyPage()
	}
	grouped := GroupAndSum(products)
	filtered := Filter(grouped, q)
	return Page{
		Products: filtered,
		Options:  UniqueFilterOptions(grouped),
		Total:    len(filtered),
	}
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.products.GetProduct(ctx, productID)
}

func emptyPage() Page {
	return Page{
		Products: []domain.Product{},
		Options:  FilterOptions{Categories: []string{}, Colors: []string{}, Sizes: []string{}},
	}
}
