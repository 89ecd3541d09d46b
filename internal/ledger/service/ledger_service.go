package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/ledger/repository"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/database"
	"github.com/ridloal/lux-storefront/internal/platform/events"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

var ErrStoreUnavailable = errors.New("store temporarily unavailable, please try again")

type LedgerService interface {
	Sell(ctx context.Context, principal auth.Principal, req domain.SellRequest) (*domain.Sale, error)
	ListSales(ctx context.Context, principal auth.Principal) ([]domain.Sale, error)
	ListSalesWithProduct(ctx context.Context, principal auth.Principal) ([]domain.SaleWithProduct, error)
}

// commitError marks a failure returned by COMMIT itself.
type commitError struct {
	err error
}

func (e *commitError) Error() string { return "commit: " + e.err.Error() }
func (e *commitError) Unwrap() error { return e.err }

type Options struct {
	MaxRetries   int           // extra attempts after a transient failure
	RetryBackoff time.Duration // multiplied by the attempt number
}

type ledgerServiceImpl struct {
	repo      repository.LedgerRepository
	authz     auth.Authorizer
	publisher events.Publisher
	opts      Options
}

func NewLedgerService(repo repository.LedgerRepository, authz auth.Authorizer, publisher events.Publisher, opts Options) LedgerService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &ledgerServiceImpl{repo: repo, authz: authz, publisher: publisher, opts: opts}
}

// Sell decrements stock and records the sale in one transaction. Transient
// store failures are retried; a retry never observes a partial earlier attempt
// because a failed attempt is rolled back as a whole. A COMMIT that fails
// without the server reporting a rollback is never retried.
//
// Sell is not idempotent across calls: calling it again after an apparent
// failure may deduct stock twice if the first attempt committed.
func (s *ledgerServiceImpl) Sell(ctx context.Context, principal auth.Principal, req domain.SellRequest) (*domain.Sale, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := s.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		sale, err := s.sellOnce(ctx, req)
		if err == nil {
			s.publisher.Publish(events.TopicSaleRecorded, sale.ID)
			s.publisher.Publish(events.TopicCatalogChanged, sale.ProductID)
			return sale, nil
		}
		var cErr *commitError
		if errors.As(err, &cErr) && !database.IsRolledBack(cErr.err) {
			// The COMMIT may have applied; running the sale again could record it twice.
			logger.Error("Svc.Sell: commit outcome unknown, not retrying", err, req.ProductID)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if !database.IsRetryable(err) {
			return nil, err
		}
		lastErr = err
		logger.Warn("Svc.Sell: transient failure on attempt %d for product %s: %v", attempt+1, req.ProductID, err)
	}

	logger.Error("Svc.Sell: retries exhausted", lastErr, req.ProductID)
	return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, lastErr)
}

func (s *ledgerServiceImpl) sellOnce(ctx context.Context, req domain.SellRequest) (*domain.Sale, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // no-op after Commit

	stock, err := s.repo.GetStockForUpdate(ctx, tx, req.ProductID)
	if err != nil {
		return nil, err
	}

	newQuantity := stock.Quantity - req.Quantity
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: requested %d, available %d", repository.ErrInsufficientStock, req.Quantity, stock.Quantity)
	}

	if err := s.repo.DecreaseProductQuantity(ctx, tx, req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		SP:        req.UnitSellingPrice,
		BP:        stock.BP,
		Profit:    domain.Profit(req.UnitSellingPrice, stock.BP, req.Quantity),
	}
	if err := s.repo.InsertSale(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Svc.Sell: commit failed", err, req.ProductID)
		return nil, &commitError{err: err}
	}
	return sale, nil
}

func (s *ledgerServiceImpl) wait(ctx context.Context, attempt int) error {
	if s.opts.RetryBackoff <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.opts.RetryBackoff * time.Duration(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *ledgerServiceImpl) ListSales(ctx context.Context, principal auth.Principal) ([]domain.Sale, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return s.repo.ListSales(ctx)
}

func (s *ledgerServiceImpl) ListSalesWithProduct(ctx context.Context, principal auth.Principal) ([]domain.SaleWithProduct, error) {
	if err := s.authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return s.repo.ListSalesWithProduct(ctx)
}
