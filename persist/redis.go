package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const subscribeTimeout = 5 * time.Second

var _ Storage = (*RedisStorage)(nil)

// RedisStorage stores raw values as plain Redis strings under scoped keys.
type RedisStorage struct {
	client redis.UniversalClient
	scope  Scope
}

func NewRedisStorage(client redis.UniversalClient, scope Scope) *RedisStorage {
	return &RedisStorage{client: client, scope: scope}
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := r.client.Get(ctx, r.scope.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, raw string) error {
	return r.client.Set(ctx, r.scope.Key(key), raw, 0).Err()
}

var _ Notifier = (*RedisKeyspaceNotifier)(nil)

// RedisKeyspaceNotifier listens to Redis keyspace notifications, so every
// SET on a scoped key is signalled by the server itself and Notify has
// nothing to do. The server must have keyspace events enabled for string
// commands (notify-keyspace-events containing "K$" or "KA").
//
// Keyspace events do not say who wrote, so the writing process also
// receives its own changes; subscribers re-read and find the memo current.
type RedisKeyspaceNotifier struct {
	client redis.UniversalClient
	scope  Scope
	db     int
	logger *zap.Logger
}

func NewRedisKeyspaceNotifier(client redis.UniversalClient, scope Scope, db int, logger *zap.Logger) *RedisKeyspaceNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisKeyspaceNotifier{client: client, scope: scope, db: db, logger: logger}
}

// EnableKeyspaceEvents turns on keyspace notifications for string commands.
// Managed Redis offerings often forbid CONFIG; enable it there out of band.
func (n *RedisKeyspaceNotifier) EnableKeyspaceEvents(ctx context.Context) error {
	return n.client.ConfigSet(ctx, "notify-keyspace-events", "K$").Err()
}

func (n *RedisKeyspaceNotifier) Notify(context.Context, Channel) error {
	return nil
}

func (n *RedisKeyspaceNotifier) Watch(ch Channel, fn func()) (func(), error) {
	return watchRedis(n.client, n.keyspaceChannel(ch), n.logger, func(*redis.Message) bool {
		return true
	}, fn)
}

func (n *RedisKeyspaceNotifier) keyspaceChannel(ch Channel) string {
	return fmt.Sprintf("__keyspace@%d__:%s", n.db, n.scope.Key(ch.Key))
}

var _ Notifier = (*RedisPubSubNotifier)(nil)

// RedisPubSubNotifier publishes an explicit message per write on the
// channel named after the signal. The payload is the origin id of the
// writer, used only to drop the writer's own echo.
type RedisPubSubNotifier struct {
	client redis.UniversalClient
	scope  Scope
	origin string
	logger *zap.Logger
}

func NewRedisPubSubNotifier(client redis.UniversalClient, scope Scope, logger *zap.Logger) *RedisPubSubNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPubSubNotifier{client: client, scope: scope, origin: uuid.NewString(), logger: logger}
}

func (n *RedisPubSubNotifier) Notify(ctx context.Context, ch Channel) error {
	return n.client.Publish(ctx, n.scope.Subject(ch.Signal), n.origin).Err()
}

func (n *RedisPubSubNotifier) Watch(ch Channel, fn func()) (func(), error) {
	return watchRedis(n.client, n.scope.Subject(ch.Signal), n.logger, func(msg *redis.Message) bool {
		return msg.Payload != n.origin
	}, fn)
}

func watchRedis(client redis.UniversalClient, channel string, logger *zap.Logger, accept func(*redis.Message) bool, fn func()) (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), subscribeTimeout)
	defer cancel()

	ps := client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	messages := ps.Channel()
	go func() {
		for msg := range messages {
			if accept(msg) {
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := ps.Close(); err != nil {
				logger.Warn("Failed to close subscription", zap.String("channel", channel), zap.Error(err))
			}
		})
	}, nil
}
