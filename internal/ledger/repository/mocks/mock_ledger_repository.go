package mocks

import (
	"context"
	"time"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/ledger/repository"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) BeginTx(ctx context.Context) (repository.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) GetStockForUpdate(ctx context.Context, dbops repository.DBTX, productID string) (*domain.StockSnapshot, error) {
	args := m.Called(ctx, dbops, productID)
	if s := args.Get(0); s != nil {
		return s.(*domain.StockSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) DecreaseProductQuantity(ctx context.Context, dbops repository.DBTX, productID string, amount int) error {
	args := m.Called(ctx, dbops, productID, amount)
	return args.Error(0)
}

func (m *MockLedgerRepository) InsertSale(ctx context.Context, dbops repository.DBTX, sale *domain.Sale) error {
	args := m.Called(ctx, dbops, sale)
	if sale != nil && args.Error(0) == nil {
		sale.ID = "mock-sale-id"
		sale.SoldAt = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	}
	return args.Error(0)
}

func (m *MockLedgerRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) ListSalesSince(ctx context.Context, since time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, since)
	if s := args.Get(0); s != nil {
		return s.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) ListSalesWithProduct(ctx context.Context) ([]domain.SaleWithProduct, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]domain.SaleWithProduct), args.Error(1)
	}
	return nil, args.Error(1)
}
