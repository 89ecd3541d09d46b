package service

import (
	"context"
	"fmt"

	"github.com/ridloal/lux-storefront/internal/media"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/events"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	"github.com/ridloal/lux-storefront/internal/product/domain"
	"github.com/ridloal/lux-storefront/internal/product/repository"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// Admin operations.
	CreateProduct(ctx context.Context, principal auth.Principal, req domain.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, principal auth.Principal, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	AdjustStock(ctx context.Context, principal auth.Principal, productID string, delta int) (int, error)
	DeleteProduct(ctx context.Context, principal auth.Principal, productID string) error
	UploadImage(ctx context.Context, principal auth.Principal, fileDataURI string) (*domain.Image, error)
}

type productServiceImpl struct {
	repo      repository.ProductRepository
	media     media.Client
	authz     auth.Authorizer
	publisher events.Publisher
}

func NewProductService(repo repository.ProductRepository, mediaClient media.Client, authz auth.Authorizer, publisher events.Publisher) ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &productServiceImpl{
		repo:      repo,
		media:     mediaClient,
		authz:     authz,
		publisher: publisher,
	}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, principal auth.Principal, req domain.CreateProductRequest) (*domain.Product, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	req.Normalize()
	p := &domain.Product{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		Size:     req.Size,
		BP:       req.BP,
		SP:       req.SP,
		Quantity: req.Quantity,
		Image:    req.Image,
	}
	if err := domain.Validate(*p); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err)
		return nil, err
	}
	s.publisher.Publish(events.TopicCatalogChanged, p.ID)
	return p, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, principal auth.Principal, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	previousImageRef := p.Image.RefID

	req.Apply(p)
	if err := domain.Validate(*p); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		logger.Error("Svc.UpdateProduct: repo error", err, productID)
		return nil, err
	}

	if previousImageRef != "" && previousImageRef != p.Image.RefID {
		s.removeImage(ctx, previousImageRef)
	}
	s.publisher.Publish(events.TopicCatalogChanged, p.ID)
	return p, nil
}

// AdjustStock moves stock by delta against the stored value, never by overwrite,
// so it cannot clobber a concurrent sale.
func (s *productServiceImpl) AdjustStock(ctx context.Context, principal auth.Principal, productID string, delta int) (int, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, fmt.Errorf("%w: stock delta must not be zero", domain.ErrInvalidProduct)
	}
	quantity, err := s.repo.AdjustQuantity(ctx, productID, delta)
	if err != nil {
		return 0, err
	}
	s.publisher.Publish(events.TopicCatalogChanged, productID)
	return quantity, nil
}

// DeleteProduct removes the product row. Sales keep their own snapshot. The
// image is removed from the media host on a best-effort basis.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, principal auth.Principal, productID string) error {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		return err
	}
	if deleted.Image.RefID != "" {
		s.removeImage(ctx, deleted.Image.RefID)
	}
	s.publisher.Publish(events.TopicCatalogChanged, productID)
	return nil
}

func (s *productServiceImpl) UploadImage(ctx context.Context, principal auth.Principal, fileDataURI string) (*domain.Image, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	res, err := s.media.Upload(ctx, fileDataURI)
	if err != nil {
		logger.Error("Svc.UploadImage: media host error", err)
		return nil, err
	}
	return &domain.Image{URL: res.SecureURL, RefID: res.PublicID}, nil
}

func (s *productServiceImpl) removeImage(ctx context.Context, refID string) {
	if err := s.media.Delete(ctx, refID); err != nil {
		logger.Warn("Svc: could not delete image %s from media host: %v", refID, err)
	}
}
