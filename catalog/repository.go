package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"goflare.io/storefront/driver"
	"goflare.io/storefront/models"
)

var ErrProductNotFound = errors.New("catalog: product not found")

// Repository is the read-only product catalog. Nothing in the storefront
// writes to it.
type Repository interface {
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

var _ Repository = (*repository)(nil)

const productColumns = `id, name, slug, description, origin, category, price_per_kg, gsm, min_kg, available_kg,
	currency, image, colors, composition, tags`

const (
	listProductsSQL   = `SELECT ` + productColumns + ` FROM products ORDER BY name`
	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	getProductBySlug  = `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	listCategoriesSQL = `SELECT id, label FROM categories ORDER BY position, id`
)

type repository struct {
	tm     *driver.TransactionManager
	logger *zap.Logger
}

// NewRepository reads the catalog from Postgres through read-only
// transactions.
func NewRepository(tm *driver.TransactionManager, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &repository{
		tm:     tm,
		logger: logger,
	}
}

func (r *repository) List(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product

	err := r.tm.ExecuteReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listProductsSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			product, err := scanProduct(rows)
			if err != nil {
				return err
			}
			products = append(products, product)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.getOne(ctx, getProductByIDSQL, id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.getOne(ctx, getProductBySlug, slug)
}

func (r *repository) getOne(ctx context.Context, query, arg string) (*models.Product, error) {
	var product *models.Product

	err := r.tm.ExecuteReadOnly(ctx, func(tx pgx.Tx) error {
		var err error
		product, err = scanProduct(tx.QueryRow(ctx, query, arg))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, arg)
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.String("lookup", arg), zap.Error(err))
		return nil, fmt.Errorf("failed to get product %s: %w", arg, err)
	}

	return product, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category

	err := r.tm.ExecuteReadOnly(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listCategoriesSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var category models.Category
			if err := rows.Scan(&category.ID, &category.Label); err != nil {
				return err
			}
			categories = append(categories, &category)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	var currency string
	if err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Origin, &p.Category,
		&p.PricePerKg, &p.GramsPerSquareMeter, &p.MinKg, &p.AvailableKg,
		&currency, &p.Image, &p.Colors, &p.Composition, &p.Tags,
	); err != nil {
		return nil, err
	}
	p.Currency = stripe.Currency(currency)
	return &p, nil
}
