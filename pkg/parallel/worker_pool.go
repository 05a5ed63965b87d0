package parallel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

// WorkerPool runs submitted tasks on a fixed number of goroutines.
// Cascade evaluations share no mutable state, so tasks need no coordination
// beyond the pool itself.
type WorkerPool struct {
	workers      int
	taskQueue    chan func()
	wg           sync.WaitGroup
	once         sync.Once
	mu           sync.RWMutex // Protects taskQueue from concurrent close during send
	closed       bool         // Protected by mu
	panicHandler func(recovered any)
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = fmt.Errorf("worker count exceeds maximum")

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// Option configures a WorkerPool.
type Option func(*WorkerPool)

// WithPanicHandler sets the function called with the value recovered from a
// panicking task. The worker keeps running afterwards.
func WithPanicHandler(h func(recovered any)) Option {
	return func(wp *WorkerPool) {
		wp.panicHandler = h
	}
}

// NewWorkerPool creates a new worker pool with specified number of workers.
// Non-positive counts default to one worker. Returns an error if the worker
// count exceeds MaxWorkers.
func NewWorkerPool(workers int, opts ...Option) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:      workers,
		taskQueue:    make(chan func(), workers*2), // Buffer for 2x workers
		panicHandler: func(any) {},
	}
	for _, opt := range opts {
		opt(pool)
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.run(task)
	}
}

// run executes one task, recovering from panics so the worker survives
func (wp *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.panicHandler(r)
		}
	}()
	task()
}

// SubmitContext adds a task to the pool, blocking while the queue is full.
// It gives up when ctx is done before the task could be queued and returns
// ErrPoolClosed or ctx.Err() on failure.
func (wp *WorkerPool) SubmitContext(ctx context.Context, task func()) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case wp.taskQueue <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks and waits for queued tasks to finish.
// It is safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}
