// Package preference holds the small per-profile settings that follow a
// shopper across pages and windows: the preferred unit and the last
// catalog search.
package preference

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/persist"
)

const (
	UnitKey    = "retrama_unit_v1"
	UnitSignal = "retrama:unit"

	// DefaultUnit is read when nothing usable is stored.
	DefaultUnit = enum.UnitArea
)

var UnitChannel = persist.Channel{Key: UnitKey, Signal: UnitSignal}

var _ UnitService = (*unitService)(nil)

type UnitService interface {
	Unit(ctx context.Context) enum.Unit
	SetUnit(ctx context.Context, unit enum.Unit) error
	Subscribe(fn func()) (unsubscribe func())
}

// unitCodec stores the bare unit tag, not JSON.
type unitCodec struct{}

func (unitCodec) Default() enum.Unit {
	return DefaultUnit
}

func (unitCodec) Decode(raw string, ok bool) enum.Unit {
	if u := enum.Unit(raw); ok && u.Valid() {
		return u
	}
	return DefaultUnit
}

func (unitCodec) Encode(unit enum.Unit) (string, error) {
	return string(unit), nil
}

type unitService struct {
	store  *persist.Store[enum.Unit]
	logger *zap.Logger
}

func NewUnitService(storage persist.Storage, notifier persist.Notifier, logger *zap.Logger) UnitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &unitService{
		store: persist.New[enum.Unit](UnitChannel, unitCodec{},
			persist.WithStorage(storage),
			persist.WithNotifier(notifier),
			persist.WithLogger(logger),
		),
		logger: logger,
	}
}

func (s *unitService) Unit(ctx context.Context) enum.Unit {
	return s.store.Read(ctx)
}

func (s *unitService) SetUnit(ctx context.Context, unit enum.Unit) error {
	if !unit.Valid() {
		return fmt.Errorf("failed to set unit preference: %w: %q", enum.ErrUnknownUnit, unit)
	}
	return s.store.Write(ctx, unit)
}

func (s *unitService) Subscribe(fn func()) func() {
	return s.store.Subscribe(fn)
}
