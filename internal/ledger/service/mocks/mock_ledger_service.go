package mocks

import (
	"context"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Sell(ctx context.Context, principal auth.Principal, req domain.SellRequest) (*domain.Sale, error) {
	args := m.Called(ctx, principal, req)
	if s := args.Get(0); s != nil {
		return s.(*domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) ListSales(ctx context.Context, principal auth.Principal) ([]domain.Sale, error) {
	args := m.Called(ctx, principal)
	if s := args.Get(0); s != nil {
		return s.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerService) ListSalesWithProduct(ctx context.Context, principal auth.Principal) ([]domain.SaleWithProduct, error) {
	args := m.Called(ctx, principal)
	if s := args.Get(0); s != nil {
		return s.([]domain.SaleWithProduct), args.Error(1)
	}
	return nil, args.Error(1)
}
