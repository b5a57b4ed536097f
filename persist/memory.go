package persist

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory Storage for tests and single-process use.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.items[key]
	return raw, ok, nil
}

func (m *MemoryStorage) Set(ctx context.Context, key, raw string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

// Delete removes key, as if the slot had never been written.
func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

// MemoryMedium is a shared in-memory storage area with change signalling
// between the contexts attached to it, the way tabs of one browser profile
// share local storage. A context never receives its own signals; other
// contexts receive them asynchronously through the dispatcher.
type MemoryMedium struct {
	storage  *MemoryStorage
	dispatch Dispatcher

	mu       sync.Mutex
	watchers map[string]map[uint64]memoryWatcher
	next     uint64
}

type memoryWatcher struct {
	origin string
	fn     func()
}

// NewMemoryMedium creates a medium. A nil dispatcher delivers each signal on
// its own goroutine.
func NewMemoryMedium(dispatch Dispatcher) *MemoryMedium {
	return &MemoryMedium{
		storage:  NewMemoryStorage(),
		dispatch: dispatch,
		watchers: make(map[string]map[uint64]memoryWatcher),
	}
}

// Storage returns the storage shared by every context of the medium.
func (m *MemoryMedium) Storage() *MemoryStorage {
	return m.storage
}

// Notifier returns the notifier of a new context attached to the medium.
func (m *MemoryMedium) Notifier() Notifier {
	return &memoryNotifier{medium: m, origin: uuid.NewString()}
}

func (m *MemoryMedium) broadcast(origin, key string) {
	m.mu.Lock()
	targets := make([]func(), 0, len(m.watchers[key]))
	for _, w := range m.watchers[key] {
		if w.origin != origin {
			targets = append(targets, w.fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range targets {
		if m.dispatch != nil {
			m.dispatch.Submit(fn)
		} else {
			go fn()
		}
	}
}

func (m *MemoryMedium) watch(origin, key string, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	if m.watchers[key] == nil {
		m.watchers[key] = make(map[uint64]memoryWatcher)
	}
	m.watchers[key][id] = memoryWatcher{origin: origin, fn: fn}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.watchers[key], id)
	}
}

type memoryNotifier struct {
	medium *MemoryMedium
	origin string
}

func (n *memoryNotifier) Notify(ctx context.Context, ch Channel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.medium.broadcast(n.origin, ch.Key)
	return nil
}

func (n *memoryNotifier) Watch(ch Channel, fn func()) (func(), error) {
	return n.medium.watch(n.origin, ch.Key, fn), nil
}
