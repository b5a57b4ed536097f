package driver_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/storefront/driver"
)

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := driver.ConnectRedis(context.Background(), driver.RedisOptions{Addr: mr.Addr()}, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
}

func TestConnectRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := driver.ConnectRedis(context.Background(), driver.RedisOptions{Addr: addr}, nil)
	assert.Error(t, err)
}
