package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/ridloal/lux-storefront/internal/platform/database"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	"github.com/ridloal/lux-storefront/internal/product/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNegativeStock   = errors.New("stock adjustment would make quantity negative")
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	AdjustQuantity(ctx context.Context, id string, delta int) (int, error)
	DeleteProduct(ctx context.Context, id string) (*domain.Product, error)
	Fingerprint(ctx context.Context) (domain.Fingerprint, error)
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

const productColumns = `id, name, category, color, size, bp, sp, quantity, image_url, image_hint, image_ref, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Category, &p.Color, &p.Size, &p.BP, &p.SP, &p.Quantity,
		&p.Image.URL, &p.Image.Hint, &p.Image.RefID, &p.CreatedAt, &p.UpdatedAt)
}

// ListProducts returns the whole catalog, newest first.
func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p domain.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, category, color, size, bp, sp, quantity, image_url, image_hint, image_ref, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
              RETURNING created_at, updated_at`
	product.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Category, product.Color, product.Size,
		product.BP, product.SP, product.Quantity,
		product.Image.URL, product.Image.Hint, product.Image.RefID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if database.IsCheckViolation(err) {
			return ErrNegativeStock
		}
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

// UpdateProduct writes every field except quantity, which only moves by delta.
func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $1, category = $2, color = $3, size = $4, bp = $5, sp = $6,
                  image_url = $7, image_hint = $8, image_ref = $9, updated_at = GREATEST(NOW(), updated_at)
              WHERE id = $10
              RETURNING quantity, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Category, product.Color, product.Size, product.BP, product.SP,
		product.Image.URL, product.Image.Hint, product.Image.RefID, product.ID,
	).Scan(&product.Quantity, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		logger.Error("UpdateProduct: exec failed", err)
		return err
	}
	return nil
}

// AdjustQuantity applies delta against the stored quantity in a single statement
// and returns the new quantity.
func (r *postgresProductRepository) AdjustQuantity(ctx context.Context, id string, delta int) (int, error) {
	query := `UPDATE products SET quantity = quantity + $1, updated_at = GREATEST(NOW(), updated_at)
              WHERE id = $2 AND quantity + $1 >= 0
              RETURNING quantity`
	var quantity int
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(&quantity)
	if err == nil {
		return quantity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		if database.IsCheckViolation(err) {
			return 0, ErrNegativeStock
		}
		logger.Error("AdjustQuantity: exec failed", err)
		return 0, err
	}

	// No row matched: either the product is gone or the guard rejected the delta.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		logger.Error("AdjustQuantity: existence check failed", err)
		return 0, err
	}
	if !exists {
		return 0, ErrProductNotFound
	}
	return 0, ErrNegativeStock
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns
	var p domain.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("DeleteProduct: exec failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) Fingerprint(ctx context.Context) (domain.Fingerprint, error) {
	query := `SELECT COUNT(*), MAX(updated_at) FROM products`
	var fp domain.Fingerprint
	var last sql.NullTime
	if err := r.db.QueryRowContext(ctx, query).Scan(&fp.Count, &last); err != nil {
		logger.Error("Fingerprint: query failed", err)
		return domain.Fingerprint{}, err
	}
	if last.Valid {
		fp.LastUpdated = last.Time.UTC()
	}
	return fp, nil
}
