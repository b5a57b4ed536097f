// Package storefront wires the cart, the shopper preferences and the
// product catalog of one profile into a single Session.
package storefront

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goflare.io/storefront/cart"
	"goflare.io/storefront/catalog"
	"goflare.io/storefront/config"
	"goflare.io/storefront/driver"
	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/persist"
	"goflare.io/storefront/preference"
)

const (
	connectionName  = "storefront"
	dispatchWorkers = 4
)

// Ports are the collaborators a Session runs on. A nil Storage gives a
// detached session; a nil Catalog serves the seed catalog.
type Ports struct {
	Storage  persist.Storage
	Notifier persist.Notifier
	Catalog  catalog.Repository
}

// Session is the storefront as seen by one browsing context of a profile.
type Session struct {
	cart    cart.Service
	unit    preference.UnitService
	search  preference.SearchService
	catalog catalog.Repository

	logger  *zap.Logger
	closers []func()
}

func NewSessionWithPorts(ports Ports, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := ports.Catalog
	if repo == nil {
		repo = catalog.NewSeedRepository()
	}
	return &Session{
		cart:    cart.NewService(ports.Storage, ports.Notifier, logger.Named("cart")),
		unit:    preference.NewUnitService(ports.Storage, ports.Notifier, logger.Named("unit")),
		search:  preference.NewSearchService(ports.Storage, ports.Notifier, logger.Named("search")),
		catalog: repo,
		logger:  logger,
	}
}

// NewSession connects the backends named by cfg. Without Redis the profile
// lives in process memory and is shared only by sessions of this process.
func NewSession(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var closers []func()
	fail := func(err error) (*Session, error) {
		runClosers(closers)
		return nil, err
	}

	var ports Ports

	if cfg.Postgres.DSN != "" {
		db, err := driver.ConnectSQL(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Error("Failed to connect to catalog database", zap.Error(err))
			return fail(fmt.Errorf("failed to connect to catalog database: %w", err))
		}
		closers = append(closers, db.Pool.Close)
		ports.Catalog = catalog.NewRepository(driver.NewTransactionManager(db.Pool, logger), logger.Named("catalog"))
	}

	if cfg.Detached {
		s := NewSessionWithPorts(ports, logger)
		s.closers = closers
		return s, nil
	}

	scope := cfg.Scope()
	switch {
	case cfg.Redis.Addr != "":
		client, err := driver.ConnectRedis(ctx, driver.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = client.Close() })
		ports.Storage = persist.NewRedisStorage(client, scope)

		switch {
		case cfg.NATS.URL != "":
			conn, err := driver.ConnectNATS(cfg.NATS.URL, connectionName, logger)
			if err != nil {
				return fail(err)
			}
			closers = append(closers, conn.Close)
			ports.Notifier = persist.NewNATSNotifier(conn, scope, logger)
		case cfg.Redis.Notify == config.NotifyPubSub:
			ports.Notifier = persist.NewRedisPubSubNotifier(client, scope, logger)
		default:
			n := persist.NewRedisKeyspaceNotifier(client, scope, cfg.Redis.DB, logger)
			if err := n.EnableKeyspaceEvents(ctx); err != nil {
				logger.Warn("Could not enable keyspace events, relying on server config", zap.Error(err))
			}
			ports.Notifier = n
		}
	default:
		if cfg.NATS.URL != "" {
			logger.Warn("Ignoring nats.url without shared storage", zap.String("url", cfg.NATS.URL))
		}
		pool := NewWorkerPool(dispatchWorkers, logger)
		closers = append(closers, pool.Shutdown)
		medium := persist.NewMemoryMedium(pool)
		ports.Storage = medium.Storage()
		ports.Notifier = medium.Notifier()
	}

	s := NewSessionWithPorts(ports, logger)
	s.closers = closers
	logger.Info("Session ready",
		zap.String("namespace", cfg.Namespace),
		zap.String("profile", cfg.Profile),
		zap.Bool("redis", cfg.Redis.Addr != ""),
		zap.Bool("nats", cfg.NATS.URL != "" && cfg.Redis.Addr != ""),
		zap.Bool("postgres", cfg.Postgres.DSN != ""),
	)
	return s, nil
}

// Close releases the connections opened by NewSession.
func (s *Session) Close() {
	runClosers(s.closers)
	s.closers = nil
}

func runClosers(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

func (s *Session) Cart(ctx context.Context) *models.Cart {
	return s.cart.Cart(ctx)
}

func (s *Session) ItemCount(ctx context.Context) int {
	return s.cart.ItemCount(ctx)
}

func (s *Session) AddItem(ctx context.Context, productID string, unit enum.Unit, quantity float64) error {
	return s.cart.AddItem(ctx, productID, unit, quantity)
}

func (s *Session) SetItemQuantity(ctx context.Context, productID string, unit enum.Unit, quantity float64) error {
	return s.cart.SetItemQuantity(ctx, productID, unit, quantity)
}

func (s *Session) RemoveItem(ctx context.Context, productID string, unit enum.Unit) error {
	return s.cart.RemoveItem(ctx, productID, unit)
}

// SwitchItemUnit moves the (productID, from) cart line to unit to.
func (s *Session) SwitchItemUnit(ctx context.Context, productID string, from, to enum.Unit) error {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	return s.cart.SwitchUnit(ctx, product, from, to)
}

func (s *Session) Clear(ctx context.Context) error {
	return s.cart.Clear(ctx)
}

func (s *Session) Unit(ctx context.Context) enum.Unit {
	return s.unit.Unit(ctx)
}

func (s *Session) SetUnit(ctx context.Context, unit enum.Unit) error {
	return s.unit.SetUnit(ctx, unit)
}

func (s *Session) SearchTerm(ctx context.Context) string {
	return s.search.Term(ctx)
}

func (s *Session) SetSearchTerm(ctx context.Context, term string) error {
	return s.search.SetTerm(ctx, term)
}

func (s *Session) SubscribeCart(fn func()) func() {
	return s.cart.Subscribe(fn)
}

func (s *Session) SubscribeUnit(fn func()) func() {
	return s.unit.Subscribe(fn)
}

func (s *Session) SubscribeSearch(fn func()) func() {
	return s.search.Subscribe(fn)
}

// Summary prices the current cart against the catalog.
func (s *Session) Summary(ctx context.Context) (*models.CartSummary, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to price cart: %w", err)
	}
	return cart.Summarize(s.cart.Cart(ctx), products), nil
}

// Products lists the catalog for q. An empty q.Unit sorts by the preferred
// unit and an empty q.Search uses the stored search term.
func (s *Session) Products(ctx context.Context, q catalog.Query) ([]*models.Product, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if q.Unit == "" {
		q.Unit = s.unit.Unit(ctx)
	}
	if q.Search == "" {
		q.Search = s.search.Term(ctx)
	}
	return catalog.Apply(products, q), nil
}

func (s *Session) Categories(ctx context.Context) ([]*models.Category, error) {
	return s.catalog.ListCategories(ctx)
}

// Product looks a product up by id.
func (s *Session) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.catalog.GetByID(ctx, id)
}
