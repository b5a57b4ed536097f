package storefront_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/storefront"
	"goflare.io/storefront/catalog"
	"goflare.io/storefront/config"
	"goflare.io/storefront/models/enum"
	"goflare.io/storefront/persist"
)

func TestSessionSummaryPricesAgainstCatalog(t *testing.T) {
	ctx := context.Background()
	s := storefront.NewSessionWithPorts(storefront.Ports{Storage: persist.NewMemoryStorage()}, nil)

	require.NoError(t, s.AddItem(ctx, "1", enum.UnitWeight, 2))
	require.NoError(t, s.AddItem(ctx, "ghost", enum.UnitWeight, 5))

	summary, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 37.8, summary.Total)
	assert.Equal(t, 2, s.ItemCount(ctx))
}

func TestSessionProductsUseStoredPreferences(t *testing.T) {
	ctx := context.Background()
	s := storefront.NewSessionWithPorts(storefront.Ports{Storage: persist.NewMemoryStorage()}, nil)

	require.NoError(t, s.SetSearchTerm(ctx, "cetim"))
	products, err := s.Products(ctx, catalog.Query{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "7", products[0].ID)

	require.NoError(t, s.SetSearchTerm(ctx, ""))
	require.NoError(t, s.SetUnit(ctx, enum.UnitWeight))
	products, err = s.Products(ctx, catalog.Query{Sort: enum.SortOrderPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, "8", products[0].ID, "cheapest per kg first")
}

func TestDetachedSessionReadsDefaults(t *testing.T) {
	ctx := context.Background()
	s, err := storefront.NewSession(ctx, &config.Config{Detached: true}, nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AddItem(ctx, "1", enum.UnitArea, 1))
	require.NoError(t, s.SetUnit(ctx, enum.UnitWeight))

	assert.Empty(t, s.Cart(ctx).Items)
	assert.Equal(t, enum.UnitArea, s.Unit(ctx))
	assert.Empty(t, s.SearchTerm(ctx))
}

func TestInProcessSessionsOfOneProfile(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Profile: "alice", Namespace: "storefront", Redis: config.RedisConfig{Notify: config.NotifyKeyspace}}

	s, err := storefront.NewSession(ctx, cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	var calls atomic.Int32
	defer s.SubscribeCart(func() { calls.Add(1) })()

	require.NoError(t, s.AddItem(ctx, "1", enum.UnitArea, 1))
	assert.EqualValues(t, 1, calls.Load())
}

func TestSessionsShareProfileOverRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Profile:   "alice",
		Namespace: "storefront",
		Redis:     config.RedisConfig{Addr: mr.Addr(), Notify: config.NotifyPubSub},
	}

	tabA, err := storefront.NewSession(ctx, cfg, nil)
	require.NoError(t, err)
	defer tabA.Close()
	tabB, err := storefront.NewSession(ctx, cfg, nil)
	require.NoError(t, err)
	defer tabB.Close()

	var unitChanges atomic.Int32
	defer tabB.SubscribeUnit(func() { unitChanges.Add(1) })()

	require.NoError(t, tabA.SetUnit(ctx, enum.UnitWeight))

	assert.Eventually(t, func() bool { return unitChanges.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, enum.UnitWeight, tabB.Unit(ctx))
}
