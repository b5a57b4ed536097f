package storefront

import (
	"sync"

	"go.uber.org/zap"

	"goflare.io/storefront/persist"
)

var _ persist.Dispatcher = (*WorkerPool)(nil)

const taskBuffer = 1000

// WorkerPool runs submitted tasks on a fixed set of goroutines. It delivers
// cross-context change signals so a slow subscriber never blocks the
// notifier that received the signal.
type WorkerPool struct {
	tasks  chan func()
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewWorkerPool(size int, logger *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	wp := &WorkerPool{
		tasks:  make(chan func(), taskBuffer),
		logger: logger,
	}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}

	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		wp.run(task)
	}
}

func (wp *WorkerPool) run(task func()) {
	defer func() {
		if p := recover(); p != nil {
			wp.logger.Error("Task panicked", zap.Any("panic", p))
		}
	}()
	task()
}

// Submit queues task without blocking. Tasks submitted after Shutdown or
// while the queue is full are dropped.
func (wp *WorkerPool) Submit(task func()) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		wp.logger.Debug("Dropping task submitted after shutdown")
		return
	}
	select {
	case wp.tasks <- task:
	default:
		wp.logger.Warn("Task queue full, dropping task", zap.Int("capacity", cap(wp.tasks)))
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.tasks)
	wp.mu.Unlock()

	wp.wg.Wait()
}
