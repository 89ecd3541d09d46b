package alert

import (
	"context"
	"fmt"
	"time"

	ldomain "github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	pdomain "github.com/ridloal/lux-storefront/internal/product/domain"
	"golang.org/x/sync/errgroup"
)

const fallbackTitle = "Low Stock Warning"

type ProductLister interface {
	ListProducts(ctx context.Context) ([]pdomain.Product, error)
}

type SalesLister interface {
	ListSalesSince(ctx context.Context, since time.Time) ([]ldomain.Sale, error)
}

// Alert is an advisor message as received, plus display details of the
// product when it is still in the catalog.
type Alert struct {
	ProductID    string `json:"product_id"`
	Message      string `json:"message"`
	Title        string `json:"title"`
	CurrentStock *int   `json:"current_stock,omitempty"`
}

type Result struct {
	Alerts      []Alert `json:"alerts"`
	Candidates  int     `json:"candidates"`
	Unavailable bool    `json:"unavailable"`
}

type AlertService interface {
	LowStockAlerts(ctx context.Context, principal auth.Principal) (*Result, error)
}

type alertServiceImpl struct {
	products ProductLister
	sales    SalesLister
	advisor  Advisor
	authz    auth.Authorizer
	lookback time.Duration
	now      func() time.Time
}

func NewAlertService(products ProductLister, sales SalesLister, advisor Advisor, authz auth.Authorizer, lookback time.Duration) AlertService {
	return &alertServiceImpl{
		products: products,
		sales:    sales,
		advisor:  advisor,
		authz:    authz,
		lookback: lookback,
		now:      time.Now,
	}
}

// LowStockAlerts only returns an error for auth failures. Store and advisor
// failures produce an empty result marked Unavailable.
func (s *alertServiceImpl) LowStockAlerts(ctx context.Context, principal auth.Principal) (*Result, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}

	var products []pdomain.Product
	var sales []ldomain.Sale
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var since time.Time
		if s.lookback > 0 {
			since = s.now().Add(-s.lookback)
		}
		var err error
		sales, err = s.sales.ListSalesSince(gctx, since)
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Svc.LowStockAlerts: could not load store data", err)
		return unavailable(0), nil
	}

	candidates := Candidates(products)
	if len(candidates) == 0 {
		return &Result{Alerts: []Alert{}}, nil
	}

	resp, err := s.advisor.GenerateAlerts(ctx, BuildRequest(candidates, sales))
	if err != nil {
		logger.Error("Svc.LowStockAlerts: advisor failed", err)
		return unavailable(len(candidates)), nil
	}

	byID := make(map[string]pdomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	alerts := make([]Alert, 0, len(resp.Alerts))
	for _, a := range resp.Alerts {
		alert := Alert{ProductID: a.ProductID, Message: a.Message, Title: fallbackTitle}
		if p, ok := byID[a.ProductID]; ok {
			quantity := p.Quantity
			alert.Title = p.Label()
			alert.CurrentStock = &quantity
		}
		alerts = append(alerts, alert)
	}
	return &Result{Alerts: alerts, Candidates: len(candidates)}, nil
}

func unavailable(candidates int) *Result {
	return &Result{Alerts: []Alert{}, Candidates: candidates, Unavailable: true}
}
