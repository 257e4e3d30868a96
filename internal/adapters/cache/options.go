package cache

import "time"

// Option applies a configuration option to the Store.
type Option[T any] func(*Store[T])

// WithName sets the store name used as the metrics label.
func WithName[T any](name string) Option[T] {
	return func(s *Store[T]) {
		if name != "" {
			s.name = name
		}
	}
}

// WithTTL sets how long entries stay fresh.
func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(s *Store[T]) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often RunSweeper evicts stale entries.
func WithSweepInterval[T any](interval time.Duration) Option[T] {
	return func(s *Store[T]) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithClock injects a clock, letting tests advance time explicitly.
func WithClock[T any](clock Clock) Option[T] {
	return func(s *Store[T]) {
		if clock != nil {
			s.clock = clock
		}
	}
}
