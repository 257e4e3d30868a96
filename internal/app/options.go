package service

import (
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/cache"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSeason sets the season tag stamped on every resolution.
func WithSeason(season string) Option {
	return func(s *Service) {
		if season != "" {
			s.season = season
		}
	}
}

// WithResolutionCache injects the top-level resolution cache, letting
// callers control its TTL, sweep interval, and clock.
func WithResolutionCache(store *cache.Store[model.Resolution]) Option {
	return func(s *Service) {
		if store != nil {
			s.resolutions = store
		}
	}
}

// WithClock injects a clock for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithWarmupSubjects sets the subjects prefetched at startup.
func WithWarmupSubjects(subjects []string) Option {
	return func(s *Service) {
		s.warmupSubjects = subjects
	}
}

// WithWarmupWorkers sets the warmup worker count.
func WithWarmupWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.warmupWorkers = count
		}
	}
}

// WithWarmupQueueCapacity sets the warmup queue capacity. The queue is
// grown to fit the configured subjects regardless.
func WithWarmupQueueCapacity(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.warmupQueueSize = size
		}
	}
}

// WithWarmupRate sets the combined warmup fetch rate per second.
func WithWarmupRate(perSecond float64) Option {
	return func(s *Service) {
		if perSecond > 0 {
			s.warmupRate = perSecond
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}
