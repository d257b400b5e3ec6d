package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pharmaflux/internal/infrastructure/metrics"
)

// Task is one unit of background work. A non-nil error schedules a retry.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher executes tasks detached from the request that enqueued them.
// It replaces fire-and-forget goroutines: every failure is logged, counted
// and retried with backoff, so side effects stay observable.
type Dispatcher struct {
	workers    int
	maxRetries int
	backoff    time.Duration

	tasks  chan queued
	wg     sync.WaitGroup
	logger *zap.Logger

	mu     sync.Mutex
	closed bool

	closeOnce sync.Once
}

type queued struct {
	task    Task
	attempt int
}

type Option func(*Dispatcher)

func WithMaxRetries(n int) Option {
	return func(d *Dispatcher) {
		if n >= 0 {
			d.maxRetries = n
		}
	}
}

func WithBackoff(base time.Duration) Option {
	return func(d *Dispatcher) {
		if base > 0 {
			d.backoff = base
		}
	}
}

func NewDispatcher(workers, buffer int, logger *zap.Logger, opts ...Option) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		workers:    workers,
		maxRetries: 3,
		backoff:    2 * time.Second,
		tasks:      make(chan queued, buffer),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Enqueue submits a task without blocking the caller. When the queue is
// full the task is dropped with an error log; matching and contract
// generation are idempotent, so a manual re-trigger is always safe.
func (d *Dispatcher) Enqueue(t Task) {
	if d == nil || t.Run == nil {
		return
	}
	if !d.submit(queued{task: t}) {
		d.logger.Error("task queue full or closed, dropping task", zap.String("task", t.Name))
	}
}

// submit serializes sends with Close so a retry firing after shutdown can
// never hit a closed channel.
func (d *Dispatcher) submit(q queued) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	select {
	case d.tasks <- q:
		return true
	default:
		return false
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil {
		return
	}
	d.wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go func() {
			defer d.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case q, ok := <-d.tasks:
					if !ok {
						return
					}
					d.execute(ctx, q)
				}
			}
		}()
	}
}

func (d *Dispatcher) execute(ctx context.Context, q queued) {
	err := q.task.Run(ctx)
	if err == nil {
		return
	}

	if q.attempt >= d.maxRetries {
		d.logger.Error("task failed permanently",
			zap.String("task", q.task.Name),
			zap.Int("attempts", q.attempt+1),
			zap.Error(err),
		)
		return
	}

	delay := d.backoff << q.attempt
	d.logger.Warn("task failed, retrying",
		zap.String("task", q.task.Name),
		zap.Int("attempt", q.attempt+1),
		zap.Duration("retry_in", delay),
		zap.Error(err),
	)
	metrics.WorkerRetries.WithLabelValues(q.task.Name).Inc()

	q.attempt++
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
			if !d.submit(q) {
				d.logger.Error("task queue full or closed, dropping retry", zap.String("task", q.task.Name))
			}
		}
	}()
}

// Close stops intake. Workers drain the queue and exit.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.tasks)
		d.mu.Unlock()
	})
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
