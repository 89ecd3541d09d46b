package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/platform/database"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type LedgerRepository interface {
	// Sell transaction steps. Each takes the transaction returned by BeginTx.
	BeginTx(ctx context.Context) (DBTX, error)
	GetStockForUpdate(ctx context.Context, dbops DBTX, productID string) (*domain.StockSnapshot, error)
	DecreaseProductQuantity(ctx context.Context, dbops DBTX, productID string, amount int) error
	InsertSale(ctx context.Context, dbops DBTX, sale *domain.Sale) error

	ListSales(ctx context.Context) ([]domain.Sale, error)
	ListSalesSince(ctx context.Context, since time.Time) ([]domain.Sale, error)
	ListSalesWithProduct(ctx context.Context) ([]domain.SaleWithProduct, error)
}

// DBTX is satisfied by *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type postgresLedgerRepository struct {
	db *sql.DB
}

func NewPostgresLedgerRepository(db *sql.DB) LedgerRepository {
	return &postgresLedgerRepository{db: db}
}

func (r *postgresLedgerRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// GetStockForUpdate locks the product row until the transaction ends, so a
// concurrent sell of the same product waits and then reads the reduced quantity.
func (r *postgresLedgerRepository) GetStockForUpdate(ctx context.Context, dbops DBTX, productID string) (*domain.StockSnapshot, error) {
	query := `SELECT id, quantity, bp FROM products WHERE id = $1 FOR UPDATE`
	var s domain.StockSnapshot
	err := dbops.QueryRowContext(ctx, query, productID).Scan(&s.ProductID, &s.Quantity, &s.BP)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetStockForUpdate: query failed", err, productID)
		return nil, err
	}
	return &s, nil
}

func (r *postgresLedgerRepository) DecreaseProductQuantity(ctx context.Context, dbops DBTX, productID string, amount int) error {
	query := `UPDATE products SET quantity = quantity - $1, updated_at = GREATEST(NOW(), updated_at)
              WHERE id = $2 AND quantity - $1 >= 0`
	res, err := dbops.ExecContext(ctx, query, amount, productID)
	if err != nil {
		if database.IsCheckViolation(err) {
			return ErrInsufficientStock
		}
		logger.Error("DecreaseProductQuantity: exec failed", err, productID)
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// InsertSale assigns the sale id and stamps sold_at from the database clock.
func (r *postgresLedgerRepository) InsertSale(ctx context.Context, dbops DBTX, sale *domain.Sale) error {
	query := `INSERT INTO sales (id, product_id, quantity, sp, bp, profit, sold_at)
              VALUES ($1, $2, $3, $4, $5, $6, clock_timestamp())
              RETURNING sold_at`
	sale.ID = uuid.NewString()
	err := dbops.QueryRowContext(ctx, query,
		sale.ID, sale.ProductID, sale.Quantity, sale.SP, sale.BP, sale.Profit,
	).Scan(&sale.SoldAt)
	if err != nil {
		logger.Error("InsertSale: failed to insert sale", err, sale.ProductID)
		return err
	}
	return nil
}

const saleColumns = `s.id, s.product_id, s.quantity, s.sp, s.bp, s.profit, s.sold_at`

func (r *postgresLedgerRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return r.listSales(ctx, `SELECT `+saleColumns+` FROM sales s ORDER BY s.sold_at DESC, s.id ASC`)
}

func (r *postgresLedgerRepository) ListSalesSince(ctx context.Context, since time.Time) ([]domain.Sale, error) {
	return r.listSales(ctx, `SELECT `+saleColumns+` FROM sales s WHERE s.sold_at >= $1 ORDER BY s.sold_at DESC, s.id ASC`, since)
}

func (r *postgresLedgerRepository) listSales(ctx context.Context, query string, args ...interface{}) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("ListSales: query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.SP, &s.BP, &s.Profit, &s.SoldAt); err != nil {
			logger.Error("ListSales: scan failed", err)
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// ListSalesWithProduct keeps sales whose product was deleted; their product
// fields come back empty.
func (r *postgresLedgerRepository) ListSalesWithProduct(ctx context.Context) ([]domain.SaleWithProduct, error) {
	query := `SELECT ` + saleColumns + `,
                     COALESCE(p.name, ''), COALESCE(p.category, ''), COALESCE(p.color, ''), COALESCE(p.size, '')
              FROM sales s LEFT JOIN products p ON p.id = s.product_id
              ORDER BY s.sold_at DESC, s.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListSalesWithProduct: query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.SaleWithProduct{}
	for rows.Next() {
		var s domain.SaleWithProduct
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.SP, &s.BP, &s.Profit, &s.SoldAt,
			&s.ProductName, &s.ProductCategory, &s.ProductColor, &s.ProductSize); err != nil {
			logger.Error("ListSalesWithProduct: scan failed", err)
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListSalesWithProduct: rows iteration error", err)
		return nil, err
	}
	return sales, nil
}
