package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"goflare.io/storefront/catalog"
	"goflare.io/storefront/driver"
)

var readOnly = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

var productColumns = []string{
	"id", "name", "slug", "description", "origin", "category", "price_per_kg", "gsm", "min_kg",
	"available_kg", "currency", "image", "colors", "composition", "tags",
}

func newRepository(t *testing.T) (catalog.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return catalog.NewRepository(driver.NewTransactionManager(mock, nil), nil), mock
}

func TestListScansProducts(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery("SELECT (.+) FROM products ORDER BY name").
		WillReturnRows(mock.NewRows(productColumns).
			AddRow("1", "Algodao", "algodao", "d", "o", "industrial", 18.9, 220.0, 1.0, 250.0,
				"brl", "/a.jpg", []string{"Bege"}, "Algodao", []string{"resistente"}).
			AddRow("3", "Jeans", "jeans", "d", "o", "jeans", 22.0, 380.0, 1.0, 180.0,
				"brl", "/j.jpg", []string{"Azul"}, "Denim", []string{"denim"}))
	mock.ExpectCommit()

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "algodao", products[0].Slug)
	assert.Equal(t, 220.0, products[0].GramsPerSquareMeter)
	assert.Equal(t, stripe.CurrencyBRL, products[0].Currency)
	assert.Equal(t, []string{"denim"}, products[1].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlug(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE slug").
		WithArgs("tule-fantasia").
		WillReturnRows(mock.NewRows(productColumns).
			AddRow("6", "Tule", "tule-fantasia", "d", "o", "eventos", 25.0, 55.0, 0.5, 60.0,
				"brl", "/t.jpg", []string{"Branco"}, "Tule", []string{"delicado"}))
	mock.ExpectCommit()

	product, err := repo.GetBySlug(context.Background(), "tule-fantasia")
	require.NoError(t, err)
	assert.Equal(t, "6", product.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDMissingIsNotFound(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs("404").
		WillReturnRows(mock.NewRows(productColumns))
	mock.ExpectRollback()

	_, err := repo.GetByID(context.Background(), "404")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategoriesQueryFailureRollsBack(t *testing.T) {
	repo, mock := newRepository(t)
	boom := errors.New("connection reset")

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery("SELECT id, label FROM categories").WillReturnError(boom)
	mock.ExpectRollback()

	_, err := repo.ListCategories(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectBeginTx(readOnly)
	mock.ExpectQuery("SELECT id, label FROM categories").
		WillReturnRows(mock.NewRows([]string{"id", "label"}).
			AddRow("all", "Todos").
			AddRow("jeans", "Jeans"))
	mock.ExpectCommit()

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Jeans", categories[1].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}
