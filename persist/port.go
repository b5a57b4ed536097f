package persist

import (
	"context"
	"fmt"
	"strings"
)

// Storage is the key-value persistence port a Store reads and writes through.
// Keys passed in are the store's bare keys; implementations apply their own
// namespacing.
type Storage interface {
	// Get returns the raw value under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (raw string, ok bool, err error)

	// Set replaces the raw value under key.
	Set(ctx context.Context, key, raw string) error
}

// Notifier carries change signals between contexts that share one Storage.
// Signals carry no payload; receivers re-read.
type Notifier interface {
	// Notify announces that the value behind ch was just written by this context.
	Notify(ctx context.Context, ch Channel) error

	// Watch calls fn whenever another context announces a change on ch.
	// fn may be called from any goroutine.
	Watch(ch Channel, fn func()) (stop func(), err error)
}

// Dispatcher runs tasks asynchronously.
type Dispatcher interface {
	Submit(task func())
}

// Channel names one persisted value: the storage key it lives under and the
// signal name broadcast when it changes.
type Channel struct {
	Key    string
	Signal string
}

// Scope namespaces keys and subjects of one profile inside a shared medium,
// so two profiles on the same Redis or NATS never see each other's state.
type Scope struct {
	Namespace string
	Profile   string
}

// Key returns the fully qualified storage key for key.
func (s Scope) Key(key string) string {
	return s.join(":", key)
}

// Subject returns the fully qualified message subject for signal.
func (s Scope) Subject(signal string) string {
	return s.join(".", signal)
}

func (s Scope) join(sep, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Namespace, s.Profile} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, last), sep)
}

// Validate rejects profile names that would break key or subject layout.
func (s Scope) Validate() error {
	for _, part := range []string{s.Namespace, s.Profile} {
		if strings.ContainsAny(part, ".*> \t\r\n:") {
			return fmt.Errorf("persist: invalid scope segment %q", part)
		}
	}
	return nil
}
