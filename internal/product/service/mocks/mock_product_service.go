package mocks

import (
	"context"

	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) CreateProduct(ctx context.Context, principal auth.Principal, req domain.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, principal, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, principal auth.Principal, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, principal, productID, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) AdjustStock(ctx context.Context, principal auth.Principal, productID string, delta int) (int, error) {
	args := m.Called(ctx, principal, productID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, principal auth.Principal, productID string) error {
	args := m.Called(ctx, principal, productID)
	return args.Error(0)
}

func (m *MockProductService) UploadImage(ctx context.Context, principal auth.Principal, fileDataURI string) (*domain.Image, error) {
	args := m.Called(ctx, principal, fileDataURI)
	if img := args.Get(0); img != nil {
		return img.(*domain.Image), args.Error(1)
	}
	return nil, args.Error(1)
}
