package cart

import (
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"

	"goflare.io/storefront/models"
	"goflare.io/storefront/units"
)

// DefaultCurrency is used when no priced product names one.
const DefaultCurrency = stripe.CurrencyBRL

// Summarize prices every line of cart whose product is in products. Lines
// for products the catalog no longer lists are left out of both the lines
// and the total. Amounts are rounded to cents.
func Summarize(cart *models.Cart, products []*models.Product) *models.CartSummary {
	byID := make(map[string]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	summary := &models.CartSummary{
		Lines:    make([]models.CartLine, 0, cart.ItemCount()),
		Currency: DefaultCurrency,
	}
	if cart == nil {
		return summary
	}

	total := decimal.Zero
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		if product.Currency != "" {
			summary.Currency = product.Currency
		}

		unitPrice := units.PricePerUnit(product, item.Unit)
		lineTotal := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromFloat(item.Quantity))
		total = total.Add(lineTotal)

		summary.Lines = append(summary.Lines, models.CartLine{
			Item:      item,
			Product:   product,
			UnitPrice: decimal.NewFromFloat(unitPrice).Round(2).InexactFloat64(),
			Total:     lineTotal.Round(2).InexactFloat64(),
		})
	}
	summary.Total = total.Round(2).InexactFloat64()

	return summary
}
