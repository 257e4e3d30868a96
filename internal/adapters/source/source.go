// Package source defines the uniform contract every external data
// source adapter satisfies, plus the shared fetch plumbing (adapter
// cache, timeout, failure-to-absent conversion) the concrete adapters
// build on.
package source

import (
	"context"
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/cache"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/metrics"
)

// Fetch outcome labels for metrics.
const (
	outcomeOK       = "ok"
	outcomeAbsent   = "absent"
	outcomeError    = "error"
	outcomeDisabled = "disabled"
)

// Default adapter plumbing constants.
const (
	defaultTimeout = 5 * time.Second
	defaultTTL     = time.Hour
)

// Adapter fetches raw facts for a subject from exactly one external
// data source. Fetch never panics past its own boundary: every
// network or parse failure is converted to an error from this
// package's taxonomy and read as "absent" by the orchestrator.
type Adapter interface {
	ID() model.SourceID

	// Enabled reports whether the adapter can be consulted at all. An
	// adapter missing its credential self-disables for the process
	// lifetime.
	Enabled() bool

	Fetch(ctx context.Context, subject model.Subject) (*model.RawFacts, error)
}

// fetchFunc is the source-specific part an adapter plugs into Base.
type fetchFunc func(ctx context.Context, subject model.Subject) (*model.RawFacts, error)

// Base carries the plumbing shared by every adapter: a TTL cache keyed
// by normalized subject name, a per-fetch timeout, and metrics/log
// instrumentation.
type Base struct {
	id      model.SourceID
	store   *cache.Store[*model.RawFacts]
	timeout time.Duration
	log     logger.Logger
}

// NewBase builds adapter plumbing for the given source.
func NewBase(id model.SourceID, opts ...BaseOption) Base {
	b := Base{
		id:      id,
		timeout: defaultTimeout,
		log:     logger.Get().Named(string(id)),
	}
	for _, opt := range opts {
		opt(&b)
	}
	if b.store == nil {
		b.store = cache.New[*model.RawFacts](
			cache.WithName[*model.RawFacts](string(id)),
			cache.WithTTL[*model.RawFacts](defaultTTL),
		)
	}
	return b
}

// ID returns the source identifier.
func (b *Base) ID() model.SourceID { return b.id }

// run executes fn under the adapter timeout with cache in front.
// Failures never escape: any error (timeouts included) is logged,
// counted, and returned as ErrUnavailable so the reconciler treats
// the source as absent. fn returning (nil, nil) means the source had
// nothing for this subject, which surfaces as ErrNoData.
func (b *Base) run(ctx context.Context, subject model.Subject, fn fetchFunc) (*model.RawFacts, error) {
	if facts, ok := b.store.Get(subject.Key()); ok {
		return facts, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	facts, err := b.guarded(ctx, subject, fn)
	metrics.RecordAdapterFetchLatency(string(b.id), float64(time.Since(start).Milliseconds()))

	switch {
	case err != nil:
		metrics.RecordAdapterFetch(string(b.id), outcomeError)
		b.log.Warn(ctx, "source fetch failed",
			logger.String("subject", subject.Name),
			logger.Error(err))
		return nil, ErrUnavailable
	case facts == nil:
		metrics.RecordAdapterFetch(string(b.id), outcomeAbsent)
		return nil, ErrNoData
	}

	facts.Source = b.id
	facts.RetrievedAt = time.Now()
	b.store.Put(subject.Key(), facts)
	metrics.RecordAdapterFetch(string(b.id), outcomeOK)
	return facts, nil
}

// guarded runs fn and converts a panic into an error so one broken
// response parser cannot take down a resolution.
func (b *Base) guarded(ctx context.Context, subject model.Subject, fn fetchFunc) (facts *model.RawFacts, err error) {
	defer func() {
		if r := recover(); r != nil {
			facts = nil
			err = ErrUnavailable
			b.log.Error(ctx, "source fetch panicked",
				logger.String("subject", subject.Name),
				logger.Any("panic", r))
		}
	}()
	return fn(ctx, subject)
}

// disabled counts a fetch against a self-disabled adapter.
func (b *Base) disabled() (*model.RawFacts, error) {
	metrics.RecordAdapterFetch(string(b.id), outcomeDisabled)
	return nil, ErrDisabled
}
