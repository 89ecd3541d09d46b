package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	ledgerRepo "github.com/ridloal/lux-storefront/internal/ledger/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mimics row-level locking: GetStockForUpdate holds the product's
// lock until the transaction commits or rolls back.
type memStore struct {
	mu       sync.Mutex
	rowLocks map[string]*sync.Mutex
	stock    map[string]int
	bp       map[string]decimal.Decimal
	sales    []domain.Sale
	nextID   int
}

func newMemStore() *memStore {
	return &memStore{
		rowLocks: map[string]*sync.Mutex{},
		stock:    map[string]int{},
		bp:       map[string]decimal.Decimal{},
	}
}

func (s *memStore) addProduct(id string, quantity int, bp int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rowLocks[id] = &sync.Mutex{}
	s.stock[id] = quantity
	s.bp[id] = decimal.NewFromInt(bp)
}

func (s *memStore) quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stock[id]
}

func (s *memStore) saleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}

type memTx struct {
	store   *memStore
	locked  []*sync.Mutex
	pending map[string]int
	sales   []domain.Sale
	done    bool
}

func (tx *memTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errors.New("not supported")
}
func (tx *memTx) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errors.New("not supported")
}
func (tx *memTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}
func (tx *memTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }

func (tx *memTx) Commit() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.store.mu.Lock()
	for id, q := range tx.pending {
		tx.store.stock[id] = q
	}
	tx.store.sales = append(tx.store.sales, tx.sales...)
	tx.store.mu.Unlock()
	tx.release()
	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return sql.ErrTxDone
	}
	tx.release()
	return nil
}

func (tx *memTx) release() {
	tx.done = true
	for _, l := range tx.locked {
		l.Unlock()
	}
	tx.locked = nil
}

type memLedgerRepository struct {
	store *memStore
}

func (r *memLedgerRepository) BeginTx(context.Context) (ledgerRepo.DBTX, error) {
	return &memTx{store: r.store, pending: map[string]int{}}, nil
}

func (r *memLedgerRepository) GetStockForUpdate(_ context.Context, dbops ledgerRepo.DBTX, productID string) (*domain.StockSnapshot, error) {
	tx := dbops.(*memTx)
	r.store.mu.Lock()
	lock, ok := r.store.rowLocks[productID]
	r.store.mu.Unlock()
	if !ok {
		return nil, ledgerRepo.ErrProductNotFound
	}
	lock.Lock()
	tx.locked = append(tx.locked, lock)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return &domain.StockSnapshot{ProductID: productID, Quantity: r.store.stock[productID], BP: r.store.bp[productID]}, nil
}

func (r *memLedgerRepository) DecreaseProductQuantity(_ context.Context, dbops ledgerRepo.DBTX, productID string, amount int) error {
	tx := dbops.(*memTx)
	r.store.mu.Lock()
	current := r.store.stock[productID]
	r.store.mu.Unlock()
	if q, ok := tx.pending[productID]; ok {
		current = q
	}
	if current-amount < 0 {
		return ledgerRepo.ErrInsufficientStock
	}
	tx.pending[productID] = current - amount
	return nil
}

func (r *memLedgerRepository) InsertSale(_ context.Context, dbops ledgerRepo.DBTX, sale *domain.Sale) error {
	tx := dbops.(*memTx)
	r.store.mu.Lock()
	r.store.nextID++
	sale.ID = fmt.Sprintf("sale-%d", r.store.nextID)
	r.store.mu.Unlock()
	tx.sales = append(tx.sales, *sale)
	return nil
}

func (r *memLedgerRepository) ListSales(context.Context) ([]domain.Sale, error) { return nil, nil }
func (r *memLedgerRepository) ListSalesSince(context.Context, time.Time) ([]domain.Sale, error) {
	return nil, nil
}
func (r *memLedgerRepository) ListSalesWithProduct(context.Context) ([]domain.SaleWithProduct, error) {
	return nil, nil
}

func concurrentSells(t *testing.T, svc LedgerService, productID string, callers, quantity int) (successes, insufficient int) {
	t.Helper()
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Sell(context.Background(), admin, domain.SellRequest{
				ProductID: productID, Quantity: quantity, UnitSellingPrice: decimal.NewFromInt(150),
			})
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ledgerRepo.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return successes, insufficient
}

func TestLedgerService_Sell_ConcurrentNoOversell(t *testing.T) {
	t.Run("Two sells of the whole stock", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			store := newMemStore()
			store.addProduct("p1", 5, 100)
			svc := NewLedgerService(&memLedgerRepository{store: store}, authz, nil, Options{})

			successes, insufficient := concurrentSells(t, svc, "p1", 2, 5)
			require.Equal(t, 1, successes)
			require.Equal(t, 1, insufficient)
			require.Equal(t, 0, store.quantity("p1"))
			require.Equal(t, 1, store.saleCount())
		}
	})

	t.Run("Many single-unit sells", func(t *testing.T) {
		store := newMemStore()
		store.addProduct("p1", 10, 100)
		svc := NewLedgerService(&memLedgerRepository{store: store}, authz, nil, Options{})

		successes, insufficient := concurrentSells(t, svc, "p1", 25, 1)
		assert.Equal(t, 10, successes)
		assert.Equal(t, 15, insufficient)
		assert.Equal(t, 0, store.quantity("p1"))
		assert.Equal(t, 10, store.saleCount())
	})
}

func TestLedgerService_Sell_OverQuantityLeavesStockUnchanged(t *testing.T) {
	for _, q := range []int{0, 1, 2, 7} {
		store := newMemStore()
		store.addProduct("p1", q, 100)
		svc := NewLedgerService(&memLedgerRepository{store: store}, authz, nil, Options{})

		_, err := svc.Sell(context.Background(), admin, domain.SellRequest{ProductID: "p1", Quantity: q + 1, UnitSellingPrice: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, ledgerRepo.ErrInsufficientStock)
		assert.Equal(t, q, store.quantity("p1"))
		assert.Zero(t, store.saleCount())
	}
}

func TestLedgerService_Sell_WithinStock(t *testing.T) {
	store := newMemStore()
	store.addProduct("p1", 10, 100)
	svc := NewLedgerService(&memLedgerRepository{store: store}, authz, nil, Options{})

	sale, err := svc.Sell(context.Background(), admin, domain.SellRequest{ProductID: "p1", Quantity: 3, UnitSellingPrice: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.Equal(t, 7, store.quantity("p1"))
	assert.Equal(t, 1, store.saleCount())
	assert.Equal(t, 3, sale.Quantity)
	assert.True(t, decimal.NewFromInt(100).Equal(sale.BP))
	assert.True(t, decimal.NewFromInt(150).Equal(sale.Profit))
}
