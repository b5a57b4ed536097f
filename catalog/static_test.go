package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/storefront/catalog"
)

func TestSeedRepository(t *testing.T) {
	ctx := context.Background()
	repo := catalog.NewSeedRepository()

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 8)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 5)
	assert.Equal(t, "all", categories[0].ID)

	byID, err := repo.GetByID(ctx, "3")
	require.NoError(t, err)
	bySlug, err := repo.GetBySlug(ctx, "jeans-reciclado-premium")
	require.NoError(t, err)
	assert.Same(t, byID, bySlug)

	_, err = repo.GetByID(ctx, "99")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	_, err = repo.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestSeedProductsAreConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range catalog.SeedProducts() {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Positive(t, p.GramsPerSquareMeter, p.ID)
		assert.LessOrEqual(t, p.MinKg, p.AvailableKg, p.ID)
	}
}
