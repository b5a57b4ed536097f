package cart

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/persist"
)

var _ persist.Codec[*models.Cart] = (*codec)(nil)

// codec reads whatever is in the cart slot without ever failing: content
// that is not an object with an items array reads as the empty cart, and
// items that are not well formed are dropped one by one.
type codec struct {
	logger *zap.Logger
}

func (c *codec) Default() *models.Cart {
	return models.NewCart()
}

func (c *codec) Encode(cart *models.Cart) (string, error) {
	if cart == nil || cart.Items == nil {
		cart = models.NewCart()
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *codec) Decode(raw string, ok bool) *models.Cart {
	if !ok || raw == "" {
		return models.NewCart()
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		c.logger.Debug("Stored cart is not a cart record, reading as empty", zap.Error(err))
		return models.NewCart()
	}
	var elements []json.RawMessage
	if !isKind(fields["items"], '[') || json.Unmarshal(fields["items"], &elements) != nil {
		c.logger.Debug("Stored cart has no items array, reading as empty")
		return models.NewCart()
	}

	cart := models.NewCart()
	for _, element := range elements {
		item, valid := decodeItem(element)
		if !valid {
			c.logger.Debug("Dropping malformed cart item", zap.ByteString("item", element))
			continue
		}
		if _, exists := cart.Find(item.ProductID, item.Unit); exists {
			c.logger.Debug("Dropping duplicate cart item",
				zap.String("product_id", item.ProductID), zap.String("unit", string(item.Unit)))
			continue
		}
		cart.Items = append(cart.Items, item)
	}

	return cart
}

func decodeItem(element json.RawMessage) (models.CartItem, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
		return models.CartItem{}, false
	}

	var item models.CartItem

	if !isKind(fields["productId"], '"') || json.Unmarshal(fields["productId"], &item.ProductID) != nil {
		return models.CartItem{}, false
	}

	var unit string
	if !isKind(fields["unit"], '"') || json.Unmarshal(fields["unit"], &unit) != nil {
		return models.CartItem{}, false
	}
	item.Unit = enum.Unit(unit)
	if !item.Unit.Valid() {
		return models.CartItem{}, false
	}

	if !isNumber(fields["quantity"]) || json.Unmarshal(fields["quantity"], &item.Quantity) != nil {
		return models.CartItem{}, false
	}
	if math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) || item.Quantity <= 0 {
		return models.CartItem{}, false
	}

	return item, true
}

// isKind reports whether the JSON value starts with the given delimiter.
// encoding/json happily decodes null into a string, so types are checked
// on the raw bytes first.
func isKind(value json.RawMessage, first byte) bool {
	value = bytes.TrimSpace(value)
	return len(value) > 0 && value[0] == first
}

func isNumber(value json.RawMessage) bool {
	value = bytes.TrimSpace(value)
	return len(value) > 0 && (value[0] == '-' || (value[0] >= '0' && value[0] <= '9'))
}

// clampQuantity rounds quantity to two decimal places, mapping negative and
// non-finite input to zero.
func clampQuantity(quantity float64) float64 {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0
	}
	rounded := decimal.NewFromFloat(quantity).Round(2)
	if rounded.Sign() <= 0 {
		return 0
	}
	return rounded.InexactFloat64()
}

// addQuantities sums two quantities exactly before clamping, so 0.1 + 0.2
// stores 0.3.
func addQuantities(a, b float64) float64 {
	sum := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b))
	return clampQuantity(sum.InexactFloat64())
}
