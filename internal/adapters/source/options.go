package source

import (
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/cache"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"
)

// BaseOption applies a configuration option to adapter plumbing.
type BaseOption func(*Base)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(timeout time.Duration) BaseOption {
	return func(b *Base) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// WithCache injects the adapter's raw-fact cache, letting callers
// control TTL and clock.
func WithCache(store *cache.Store[*model.RawFacts]) BaseOption {
	return func(b *Base) {
		if store != nil {
			b.store = store
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) BaseOption {
	return func(b *Base) {
		if log != nil {
			b.log = log
		}
	}
}
