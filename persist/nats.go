package persist

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// OriginHeader carries the id of the context that published a signal.
const OriginHeader = "Storefront-Origin"

var _ Notifier = (*NATSNotifier)(nil)

// NATSNotifier carries change signals over NATS core subjects, one subject
// per signal inside the scope. Messages have an empty body.
type NATSNotifier struct {
	conn   *nats.Conn
	scope  Scope
	origin string
	logger *zap.Logger
}

func NewNATSNotifier(conn *nats.Conn, scope Scope, logger *zap.Logger) *NATSNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NATSNotifier{
		conn:   conn,
		scope:  scope,
		origin: uuid.NewString(),
		logger: logger,
	}
}

func (n *NATSNotifier) Notify(ctx context.Context, ch Channel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := nats.NewMsg(n.scope.Subject(ch.Signal))
	msg.Header.Set(OriginHeader, n.origin)
	if err := n.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.Subject, err)
	}
	return nil
}

func (n *NATSNotifier) Watch(ch Channel, fn func()) (func(), error) {
	subject := n.scope.Subject(ch.Signal)
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		if msg.Header.Get(OriginHeader) == n.origin {
			return
		}
		fn()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := sub.Unsubscribe(); err != nil {
				n.logger.Warn("Failed to unsubscribe", zap.String("subject", subject), zap.Error(err))
			}
		})
	}, nil
}
