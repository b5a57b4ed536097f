// Package persist keeps a value in a key-value storage slot and notifies
// subscribers when it changes, whether the change was made by this process
// or by another context sharing the same storage.
//
// A Store memoizes the last decoded value together with the raw string it
// was decoded from: reading an unchanged slot returns the same value without
// decoding again, so pointer-typed values keep their identity between reads.
//
// A Store built without Storage is detached. Detached stores always read
// their codec's default and ignore writes and subscriptions, which keeps
// output rendered without a profile identical to a first attached read of
// an empty profile.
package persist

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Codec converts between a value and its stored raw form. Decode must accept
// any input and fall back to Default for content it cannot use.
type Codec[V any] interface {
	Default() V
	Decode(raw string, ok bool) V
	Encode(value V) (string, error)
}

type options struct {
	storage  Storage
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Store.
type Option func(*options)

// WithStorage attaches the store to storage.
func WithStorage(storage Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithNotifier sets the cross-context notifier.
func WithNotifier(notifier Notifier) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Store is a persisted reactive value of type V.
type Store[V any] struct {
	channel  Channel
	codec    Codec[V]
	storage  Storage
	notifier Notifier
	logger   *zap.Logger
	fallback V

	mu      sync.Mutex
	lastRaw string
	lastOK  bool
	last    V

	writeMu sync.Mutex

	subMu     sync.Mutex
	subs      map[uint64]func()
	nextSub   uint64
	stopWatch func()
	watching  bool
}

func New[V any](channel Channel, codec Codec[V], opts ...Option) *Store[V] {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	fallback := codec.Default()
	return &Store[V]{
		channel:  channel,
		codec:    codec,
		storage:  o.storage,
		notifier: o.notifier,
		logger:   o.logger.With(zap.String("key", channel.Key)),
		fallback: fallback,
		last:     fallback,
		subs:     make(map[uint64]func()),
	}
}

func (s *Store[V]) Channel() Channel {
	return s.channel
}

// Detached reports whether the store runs without storage.
func (s *Store[V]) Detached() bool {
	return s.storage == nil
}

// Read returns the current value. It never fails: unreadable or unusable
// content reads as the codec's default.
func (s *Store[V]) Read(ctx context.Context) V {
	if s.storage == nil {
		return s.fallback
	}

	value, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("Failed to read stored value, treating as absent", zap.Error(err))
		return s.remember("", false)
	}
	return value
}

// load reads and decodes the slot, returning storage errors to the caller.
func (s *Store[V]) load(ctx context.Context) (V, error) {
	raw, ok, err := s.storage.Get(ctx, s.channel.Key)
	if err != nil {
		var zero V
		return zero, err
	}
	return s.remember(raw, ok), nil
}

func (s *Store[V]) remember(raw string, ok bool) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw == s.lastRaw && ok == s.lastOK {
		return s.last
	}

	s.lastRaw, s.lastOK = raw, ok
	s.last = s.decode(raw, ok)
	return s.last
}

// Write stores next and signals subscribers. A storage failure is returned
// and leaves both the memo and the subscribers untouched.
func (s *Store[V]) Write(ctx context.Context, next V) error {
	if s.storage == nil {
		return nil
	}

	s.writeMu.Lock()
	err := s.commit(ctx, next)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}

	s.announce(ctx)
	return nil
}

// Update reads the current value from storage, passes it to fn and writes
// the result when fn reports a change. A failed read aborts the update
// without writing. Updates on one Store are serialized; writers in other
// contexts still race with last-write-wins.
//
// fn must not modify current in place.
func (s *Store[V]) Update(ctx context.Context, fn func(current V) (next V, changed bool)) error {
	if s.storage == nil {
		return nil
	}

	s.writeMu.Lock()
	current, err := s.load(ctx)
	if err != nil {
		s.writeMu.Unlock()
		s.logger.Error("Failed to read value before update", zap.Error(err))
		return fmt.Errorf("persist: failed to read %s: %w", s.channel.Key, err)
	}
	next, changed := fn(current)
	if !changed {
		s.writeMu.Unlock()
		return nil
	}
	err = s.commit(ctx, next)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}

	s.announce(ctx)
	return nil
}

// Subscribe registers fn to run after every local write and every change
// announced by another context. The returned function deregisters fn and is
// safe to call more than once.
func (s *Store[V]) Subscribe(fn func()) (unsubscribe func()) {
	if s.storage == nil || fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	startWatch := s.notifier != nil && s.stopWatch == nil && !s.watching
	if startWatch {
		s.watching = true
	}
	s.subMu.Unlock()

	if startWatch {
		s.watch()
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

// watch starts the cross-context watch without holding subMu.
func (s *Store[V]) watch() {
	stop, err := s.notifier.Watch(s.channel, s.emit)

	s.subMu.Lock()
	s.watching = false
	if err != nil {
		s.subMu.Unlock()
		s.logger.Warn("Failed to watch for changes from other contexts", zap.Error(err))
		return
	}
	if len(s.subs) == 0 {
		s.subMu.Unlock()
		stop()
		return
	}
	s.stopWatch = stop
	s.subMu.Unlock()
}

func (s *Store[V]) unsubscribe(id uint64) {
	s.subMu.Lock()
	delete(s.subs, id)
	var stop func()
	if len(s.subs) == 0 && s.stopWatch != nil {
		stop = s.stopWatch
		s.stopWatch = nil
	}
	s.subMu.Unlock()

	if stop != nil {
		stop()
	}
}

func (s *Store[V]) commit(ctx context.Context, next V) error {
	raw, err := s.codec.Encode(next)
	if err != nil {
		s.logger.Error("Failed to encode value", zap.Error(err))
		return fmt.Errorf("persist: failed to encode %s: %w", s.channel.Key, err)
	}

	if err = s.storage.Set(ctx, s.channel.Key, raw); err != nil {
		s.logger.Error("Failed to write value", zap.Error(err))
		return fmt.Errorf("persist: failed to write %s: %w", s.channel.Key, err)
	}

	s.mu.Lock()
	s.lastRaw, s.lastOK, s.last = raw, true, next
	s.mu.Unlock()

	return nil
}

func (s *Store[V]) announce(ctx context.Context) {
	s.emit()

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, s.channel); err != nil {
		s.logger.Warn("Failed to notify other contexts", zap.String("signal", s.channel.Signal), zap.Error(err))
	}
}

// emit calls the subscribers registered when it starts.
func (s *Store[V]) emit() {
	s.subMu.Lock()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func (s *Store[V]) decode(raw string, ok bool) (value V) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("panic while decoding stored value", zap.Any("panic", p))
			value = s.codec.Default()
		}
	}()
	return s.codec.Decode(raw, ok)
}
