package catalog

import (
	"context"
	"fmt"

	"goflare.io/storefront/models"
)

var _ Repository = (*StaticRepository)(nil)

// StaticRepository serves a fixed in-memory catalog.
type StaticRepository struct {
	products   []*models.Product
	categories []*models.Category
	byID       map[string]*models.Product
	bySlug     map[string]*models.Product
}

func NewStaticRepository(products []*models.Product, categories []*models.Category) *StaticRepository {
	r := &StaticRepository{
		products:   products,
		categories: categories,
		byID:       make(map[string]*models.Product, len(products)),
		bySlug:     make(map[string]*models.Product, len(products)),
	}
	for _, p := range products {
		r.byID[p.ID] = p
		r.bySlug[p.Slug] = p
	}
	return r
}

// NewSeedRepository serves the seed catalog.
func NewSeedRepository() *StaticRepository {
	return NewStaticRepository(SeedProducts(), SeedCategories())
}

func (r *StaticRepository) List(context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *StaticRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

func (r *StaticRepository) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	if p, ok := r.bySlug[slug]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrProductNotFound, slug)
}

func (r *StaticRepository) ListCategories(context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}
