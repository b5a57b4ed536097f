package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/persist"
	"goflare.io/storefront/units"
)

const (
	// Key is the storage slot holding the serialized cart.
	Key = "retrama_cart_v1"
	// Signal is broadcast whenever the cart is written.
	Signal = "retrama:cart"
)

// Channel is where the cart lives and how its changes are announced.
var Channel = persist.Channel{Key: Key, Signal: Signal}

var _ Service = (*service)(nil)

// Service is the shopping cart of one profile. Reads never fail and fall
// back to the empty cart; mutations return storage errors.
type Service interface {
	// Cart returns the current cart. An unchanged cart is returned as the
	// same pointer; callers must not modify it.
	Cart(ctx context.Context) *models.Cart
	ItemCount(ctx context.Context) int
	AddItem(ctx context.Context, productID string, unit enum.Unit, quantity float64) error
	SetItemQuantity(ctx context.Context, productID string, unit enum.Unit, quantity float64) error
	RemoveItem(ctx context.Context, productID string, unit enum.Unit) error
	SwitchUnit(ctx context.Context, product *models.Product, from, to enum.Unit) error
	Clear(ctx context.Context) error
	Subscribe(fn func()) (unsubscribe func())
}

type service struct {
	store  *persist.Store[*models.Cart]
	logger *zap.Logger
}

// NewService builds the cart over storage and notifier. A nil storage gives
// a detached cart that is always empty.
func NewService(storage persist.Storage, notifier persist.Notifier, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := persist.New[*models.Cart](Channel, &codec{logger: logger},
		persist.WithStorage(storage),
		persist.WithNotifier(notifier),
		persist.WithLogger(logger),
	)
	return &service{store: store, logger: logger}
}

func (s *service) Cart(ctx context.Context) *models.Cart {
	return s.store.Read(ctx)
}

func (s *service) ItemCount(ctx context.Context) int {
	return s.store.Read(ctx).ItemCount()
}

// AddItem adds quantity to the (productID, unit) line, creating it if needed.
// Quantities that round to zero or below are ignored.
func (s *service) AddItem(ctx context.Context, productID string, unit enum.Unit, quantity float64) error {
	if !unit.Valid() {
		return fmt.Errorf("failed to add %s: %w: %q", productID, enum.ErrUnknownUnit, unit)
	}
	q := clampQuantity(quantity)
	if q <= 0 {
		s.logger.Debug("Ignoring non-positive quantity", zap.String("product_id", productID), zap.Float64("quantity", quantity))
		return nil
	}

	return s.store.Update(ctx, func(current *models.Cart) (*models.Cart, bool) {
		next := current.Clone()
		if i, ok := next.Find(productID, unit); ok {
			next.Items[i].Quantity = addQuantities(next.Items[i].Quantity, q)
		} else {
			next.Items = append(next.Items, models.CartItem{ProductID: productID, Unit: unit, Quantity: q})
		}
		return next, true
	})
}

// SetItemQuantity replaces the quantity of the (productID, unit) line.
// A quantity that clamps to zero removes the line.
func (s *service) SetItemQuantity(ctx context.Context, productID string, unit enum.Unit, quantity float64) error {
	if !unit.Valid() {
		return fmt.Errorf("failed to set %s: %w: %q", productID, enum.ErrUnknownUnit, unit)
	}
	q := clampQuantity(quantity)

	return s.store.Update(ctx, func(current *models.Cart) (*models.Cart, bool) {
		i, ok := current.Find(productID, unit)
		if !ok {
			return current, false
		}
		next := current.Clone()
		if q <= 0 {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
			return next, true
		}
		if next.Items[i].Quantity == q {
			return current, false
		}
		next.Items[i].Quantity = q
		return next, true
	})
}

func (s *service) RemoveItem(ctx context.Context, productID string, unit enum.Unit) error {
	return s.store.Update(ctx, func(current *models.Cart) (*models.Cart, bool) {
		i, ok := current.Find(productID, unit)
		if !ok {
			return current, false
		}
		next := current.Clone()
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next, true
	})
}

// SwitchUnit re-expresses the (product, from) line in unit to, clamped to
// what can be ordered in to, and merges it into an existing to line.
func (s *service) SwitchUnit(ctx context.Context, product *models.Product, from, to enum.Unit) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("failed to switch %s: %w", product.ID, enum.ErrUnknownUnit)
	}
	if from == to {
		return nil
	}

	return s.store.Update(ctx, func(current *models.Cart) (*models.Cart, bool) {
		i, ok := current.Find(product.ID, from)
		if !ok {
			return current, false
		}
		q := clampQuantity(units.RebaseQuantity(product, current.Items[i].Quantity, from, to))

		next := current.Clone()
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		if q <= 0 {
			return next, true
		}
		if j, ok := next.Find(product.ID, to); ok {
			next.Items[j].Quantity = addQuantities(next.Items[j].Quantity, q)
		} else {
			next.Items = append(next.Items, models.CartItem{ProductID: product.ID, Unit: to, Quantity: q})
		}
		return next, true
	})
}

func (s *service) Clear(ctx context.Context) error {
	return s.store.Write(ctx, models.NewCart())
}

func (s *service) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}
