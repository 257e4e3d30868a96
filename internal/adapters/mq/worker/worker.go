// Package worker runs the warmup workers that resolve queued subjects
// into the cache ahead of user traffic. Fetches are paced with a
// shared rate limiter so prefetching never burns through third-party
// rate limits.
package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/mq/queue"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultRatePerSecond = 2.0
	poolShutdownTimeout  = 30 * time.Second
)

// Resolver is the slice of the application service workers need.
type Resolver interface {
	Warm(ctx context.Context, subject model.Subject) error
}

// Queue defines how workers receive subjects.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Subject
}

// Worker prefetches subjects until its queue closes or ctx is
// canceled.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	resolver Resolver
	limiter  *rate.Limiter
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new warmup worker. The limiter is shared
// across the pool so the combined fetch rate stays bounded.
func NewInMemoryWorker(q Queue, resolver Resolver, limiter *rate.Limiter, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		resolver: resolver,
		limiter:  limiter,
		name:     "warmup-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("warmup-worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.limiter == nil {
		w.limiter = rate.NewLimiter(rate.Limit(defaultRatePerSecond), 1)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	subjects := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case subject, ok := <-subjects:
			if !ok {
				return
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			if err := w.resolver.Warm(ctx, subject); err != nil {
				metrics.RecordWorkerError()
				w.logger.Warn(ctx, "warmup resolution failed",
					logger.String("subject", subject.Name),
					logger.Error(err))
				continue
			}
			metrics.RecordWarmupResolved()
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// WorkerPool manages a fixed set of warmup workers sharing one queue
// and one rate limiter.
type WorkerPool struct {
	workers []*InMemoryWorker
	cancel  context.CancelFunc
	logger  logger.Logger
}

// NewWorkerPool creates count workers over the given queue.
func NewWorkerPool(count int, q Queue, resolver Resolver, ratePerSecond float64) *WorkerPool {
	if count <= 0 {
		count = 1
	}
	if ratePerSecond <= 0 {
		ratePerSecond = defaultRatePerSecond
	}
	limiter := rate.NewLimiter(rate.Limit(ratePerSecond), 1)

	pool := &WorkerPool{logger: logger.Get().Named("warmup-pool")}
	for i := 0; i < count; i++ {
		pool.workers = append(pool.workers, NewInMemoryWorker(
			q, resolver, limiter,
			WithName(fmt.Sprintf("warmup-worker-%d", i)),
		))
	}
	return pool
}

// Start launches every worker.
func (p *WorkerPool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerCount(len(p.workers))
	p.logger.Info(ctx, "warmup pool started", logger.Int("workers", len(p.workers)))
}

// Stop shuts the pool down, waiting up to the pool timeout.
func (p *WorkerPool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()

	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
	if p.cancel != nil {
		p.cancel()
	}
	metrics.UpdateWorkerCount(0)
}
