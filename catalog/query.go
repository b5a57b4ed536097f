package catalog

import (
	"sort"
	"strings"

	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/units"
)

// Query selects and orders catalog products for a listing.
type Query struct {
	// Category is a category id; empty or "all" matches every product.
	Category string
	// Search matches name, description or any tag, case-insensitively.
	Search string
	Sort   enum.SortOrder
	// Unit prices are compared in when sorting by price.
	Unit enum.Unit
}

// Apply returns the products matching q in q's order. products is not modified.
func Apply(products []*models.Product, q Query) []*models.Product {
	term := strings.ToLower(q.Search)

	out := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && q.Category != models.CategoryAll && p.Category != q.Category {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		out = append(out, p)
	}

	unit := q.Unit
	if !unit.Valid() {
		unit = enum.UnitArea
	}

	switch q.Sort {
	case enum.SortOrderPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return units.PricePerUnit(out[i], unit) < units.PricePerUnit(out[j], unit)
		})
	case enum.SortOrderPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return units.PricePerUnit(out[i], unit) > units.PricePerUnit(out[j], unit)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	}

	return out
}

func matches(p *models.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
