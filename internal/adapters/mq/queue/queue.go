// Package queue defines the contract for enqueuing and consuming
// warmup subjects: the teams and players prefetched into the
// resolution cache at startup and on demand.
package queue

import (
	"context"
	"sync"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 256
)

// Subject is the payload type flowing through the queue.
type Subject = model.Subject

// Queue provides non-blocking enqueue and channel-based dequeue
// semantics for warmup subjects.
type Queue interface {
	// Enqueue adds a subject to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, s Subject) bool

	// Dequeue returns a channel that receives subjects as they become
	// available. The channel is closed when the queue closes.
	Dequeue(ctx context.Context) <-chan Subject

	// Len returns the current number of queued subjects.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	subjects chan Subject
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.subjects = make(chan Subject, q.capacity)
	metrics.UpdateWarmupQueueSize(0)
	return q
}

// Enqueue adds a subject to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, s Subject) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.subjects <- s:
		metrics.UpdateWarmupQueueSize(len(q.subjects))
		return true
	case <-ctx.Done():
		return false
	default:
		return false // queue is full
	}
}

// Dequeue returns the subject channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Subject {
	return q.subjects
}

// Len returns the current number of queued subjects.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.subjects)
}

// Close shuts the queue down. Further enqueues return false; the
// dequeue channel drains and then closes.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	close(q.subjects)
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
