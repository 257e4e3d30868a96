// Package cache provides a generic in-memory key/value store with TTL
// eviction. Every source adapter and the top-level resolution cache
// share this one implementation; entries are owned exclusively by the
// store and replaced wholesale, never patched in place.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultTTL           = 30 * time.Minute
	defaultSweepInterval = 5 * time.Minute
)

// Clock abstracts time.Now so TTL behavior is testable without
// sleeping.
type Clock func() time.Time

// entry pairs a stored value with its storage time.
type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store is a mutex-guarded TTL map. The zero value is not usable; use
// New.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]

	name          string
	ttl           time.Duration
	sweepInterval time.Duration
	clock         Clock
}

// New creates a Store with the given options applied over defaults.
func New[T any](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		entries:       make(map[string]entry[T]),
		name:          "cache",
		ttl:           defaultTTL,
		sweepInterval: defaultSweepInterval,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached value for key if it exists and is younger
// than the TTL. Stale entries are ignored, not deleted; the sweeper or
// a subsequent Put takes care of them.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	var zero T
	if !ok {
		metrics.RecordCacheMiss(s.name)
		return zero, false
	}
	if s.clock().Sub(e.storedAt) > s.ttl {
		metrics.RecordCacheMiss(s.name)
		return zero, false
	}
	metrics.RecordCacheHit(s.name)
	return e.value, true
}

// Put stores value under key, replacing any previous entry.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	s.entries[key] = entry[T]{value: value, storedAt: s.clock()}
	size := len(s.entries)
	s.mu.Unlock()
	metrics.UpdateCacheSize(s.name, size)
}

// Delete removes key if present.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	size := len(s.entries)
	s.mu.Unlock()
	metrics.UpdateCacheSize(s.name, size)
}

// Len returns the number of entries, stale ones included.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep actively deletes every entry older than the TTL and returns
// how many were evicted.
func (s *Store[T]) Sweep() int {
	now := s.clock()
	s.mu.Lock()
	evicted := 0
	for key, e := range s.entries {
		if now.Sub(e.storedAt) > s.ttl {
			delete(s.entries, key)
			evicted++
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	if evicted > 0 {
		metrics.RecordCacheEvictions(s.name, evicted)
	}
	metrics.UpdateCacheSize(s.name, size)
	return evicted
}

// RunSweeper sweeps periodically until ctx is canceled. Run it in its
// own goroutine; it is the only background work the store does.
func (s *Store[T]) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
