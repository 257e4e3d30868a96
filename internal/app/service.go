// Package service provides the resolution orchestrator: it wires the
// classifier, the source adapters, the reconciler, the validator, and
// the caches into the one entry point the HTTP API consumes.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/cache"
	subjectqueue "github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/mq/queue"
	workerpool "github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/mq/worker"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/source"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/classify"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/merge"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/validate"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/metrics"
)

// Resolution outcome labels for metrics.
const (
	outcomeResolved = "resolved"
	outcomeCacheHit = "cache_hit"
	outcomeFailed   = "failed"
)

const defaultSeason = "2025/26"

// ResolveOptions control one resolution call.
type ResolveOptions struct {
	// BustCache bypasses the resolution cache and forces a fresh
	// fan-out; the fresh result still replaces the cached entry.
	BustCache bool
}

// inflightCall lets concurrent identical queries share one fan-out.
type inflightCall struct {
	done chan struct{}
	res  model.Resolution
}

// Service implements the resolution pipeline and the dependencies
// required by the HTTP API.
type Service struct {
	mu sync.Mutex

	// Core components, injected so lifecycle and TTLs are explicit.
	classifier  *classify.Classifier
	merger      *merge.Merger
	adapters    map[model.SourceID]source.Adapter
	resolutions *cache.Store[model.Resolution]

	// Warmup pipeline
	warmupSubjects  []string
	warmupWorkers   int
	warmupQueueSize int
	warmupRate      float64
	warmupQueue     *subjectqueue.InMemoryQueue
	pool            *workerpool.WorkerPool

	season string
	now    func() time.Time

	inflight map[string]*inflightCall

	started bool
	logger  logger.Logger
}

// New constructs a Service over the given adapters.
func New(classifier *classify.Classifier, merger *merge.Merger, adapters []source.Adapter, opts ...Option) *Service {
	s := &Service{
		classifier:    classifier,
		merger:        merger,
		adapters:      make(map[model.SourceID]source.Adapter, len(adapters)),
		season:        defaultSeason,
		now:           time.Now,
		inflight:      make(map[string]*inflightCall),
		warmupRate:    2,
		warmupWorkers: 2,
	}
	for _, a := range adapters {
		s.adapters[a.ID()] = a
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolutions == nil {
		s.resolutions = cache.New[model.Resolution](
			cache.WithName[model.Resolution]("resolutions"),
		)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("resolver")
	}
	return s
}

// Start launches the warmup pipeline and background cache sweeping.
// The request path works without Start; warmup is an optimization.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	go s.resolutions.RunSweeper(ctx)

	if len(s.warmupSubjects) > 0 {
		capacity := s.warmupQueueSize
		if capacity < len(s.warmupSubjects) {
			capacity = len(s.warmupSubjects) + 1
		}
		s.warmupQueue = subjectqueue.NewInMemoryQueue(
			subjectqueue.WithCapacity(capacity),
		)
		s.pool = workerpool.NewWorkerPool(s.warmupWorkers, s.warmupQueue, s, s.warmupRate)
		s.pool.Start(ctx)

		for _, name := range s.warmupSubjects {
			verdict := s.classifier.Classify(name)
			subject := model.Subject{Name: classify.SubjectName(name), Kind: verdict.Kind}
			if !s.warmupQueue.Enqueue(ctx, subject) {
				s.logger.Warn(ctx, "warmup queue full, subject skipped",
					logger.String("subject", subject.Name))
			}
		}
	}

	s.started = true
	s.logger.Info(ctx, "resolver service started",
		logger.Int("adapters", len(s.adapters)),
		logger.Int("warmup_subjects", len(s.warmupSubjects)),
	)
	return nil
}

// Stop shuts down the warmup pipeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.warmupQueue != nil {
		_ = s.warmupQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	s.started = false
	s.logger.Info(context.Background(), "resolver service stopped")
}

// Resolve runs the full pipeline for one query. It never returns an
// error to the caller: total source failure yields a structurally
// valid empty resolution with Error and Recommendations set.
func (s *Service) Resolve(ctx context.Context, query string, opts ResolveOptions) model.Resolution {
	start := s.now()
	verdict := s.classifier.Classify(query)
	subject := model.Subject{Name: classify.SubjectName(query), Kind: verdict.Kind}
	key := subject.Key()

	if !opts.BustCache {
		if cached, ok := s.resolutions.Get(key); ok {
			metrics.RecordResolution(outcomeCacheHit)
			cached.Metadata.CacheHit = true
			return cached
		}
		if res, shared := s.awaitInflight(key); shared {
			return res
		}
	}

	call := s.beginInflight(key)
	res := s.resolveSubject(ctx, query, subject, verdict)
	s.endInflight(key, call, res)

	metrics.RecordResolutionLatency(float64(s.now().Sub(start).Milliseconds()))
	return res
}

// Warm resolves one subject for the warmup pipeline. It reports an
// error so the worker can count failures; a cache hit is success.
func (s *Service) Warm(ctx context.Context, subject model.Subject) error {
	res := s.Resolve(ctx, subject.Name, ResolveOptions{})
	if res.Error != "" {
		return fmt.Errorf("warm %q: %s", subject.Name, res.Error)
	}
	return nil
}

// awaitInflight joins an in-progress resolution for the same key, if
// any. Coalescing keeps a thundering herd on one subject down to a
// single adapter fan-out.
func (s *Service) awaitInflight(key string) (model.Resolution, bool) {
	s.mu.Lock()
	call, ok := s.inflight[key]
	s.mu.Unlock()
	if !ok {
		return model.Resolution{}, false
	}
	<-call.done
	return call.res, true
}

func (s *Service) beginInflight(key string) *inflightCall {
	call := &inflightCall{done: make(chan struct{})}
	s.mu.Lock()
	s.inflight[key] = call
	s.mu.Unlock()
	return call
}

func (s *Service) endInflight(key string, call *inflightCall, res model.Resolution) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
	call.res = res
	close(call.done)
}

// resolveSubject is the uncached pipeline: fan out, reconcile,
// validate, cache.
func (s *Service) resolveSubject(ctx context.Context, query string, subject model.Subject, verdict classify.Verdict) model.Resolution {
	results, consulted := s.fanOut(ctx, subject, verdict.Candidates)

	out := s.merger.Merge(subject, results)
	for _, src := range out.FieldSources {
		metrics.RecordMergeFieldWin(src)
	}

	res := model.Resolution{
		Query:      query,
		Kind:       subject.Kind,
		Team:       out.Team,
		Players:    out.Players,
		RosterNote: out.RosterNote,
	}
	if res.Players == nil {
		res.Players = []model.PlayerRecord{}
	}

	report := validate.Resolution(res, s.now())
	metrics.RecordValidationScore(report.Score)

	res.Metadata = model.Metadata{
		TraceID:          uuid.NewString(),
		SourcesConsulted: consulted,
		ConfidenceScore:  report.Score,
		Issues:           append(out.Issues, report.Issues...),
		Season:           s.season,
		GeneratedAt:      s.now(),
		FieldSources:     out.FieldSources,
	}

	if len(out.SourcesUsed) == 0 {
		metrics.RecordResolution(outcomeFailed)
		res.Team = nil
		res.Players = []model.PlayerRecord{}
		res.Metadata.ConfidenceScore = 0
		res.Error = fmt.Sprintf("no data found for %q", subject.Name)
		res.Recommendations = []string{
			"check the spelling of the team or player name",
			"try the official club name, e.g. \"FC Barcelona\" instead of \"Barça\"",
			"retry later; external sources may be temporarily unavailable",
		}
		return res
	}

	// Only successful resolutions enter the cache; a failure must not
	// shadow a later retry for the TTL window.
	s.resolutions.Put(subject.Key(), res)
	metrics.RecordResolution(outcomeResolved)
	return res
}

// fanOut queries every enabled candidate adapter concurrently. Each
// adapter bounds its own latency; a failed or slow source degrades to
// absent without blocking the rest.
func (s *Service) fanOut(ctx context.Context, subject model.Subject, candidates []model.SourceID) (map[model.SourceID]*model.RawFacts, []string) {
	type fetchResult struct {
		id    model.SourceID
		facts *model.RawFacts
	}

	var consulted []string
	fetches := make([]fetchResult, 0, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for _, id := range candidates {
		adapter, ok := s.adapters[id]
		if !ok || !adapter.Enabled() {
			continue
		}
		consulted = append(consulted, string(id))

		g.Go(func() error {
			facts, err := adapter.Fetch(gctx, subject)
			if err != nil {
				if !source.IsAbsent(err) {
					s.logger.Warn(gctx, "adapter returned unexpected error",
						logger.String("adapter", string(adapter.ID())),
						logger.Error(err))
				}
				return nil
			}
			mu.Lock()
			fetches = append(fetches, fetchResult{id: adapter.ID(), facts: facts})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[model.SourceID]*model.RawFacts, len(fetches))
	for _, f := range fetches {
		results[f.id] = f.facts
	}
	return results, consulted
}

// Stats is the operational snapshot served by GET /stats.
type Stats struct {
	Season            string          `json:"season"`
	CachedResolutions int             `json:"cached_resolutions"`
	WarmupQueueDepth  int             `json:"warmup_queue_depth"`
	Adapters          map[string]bool `json:"adapters"`
}

// Snapshot gathers current service stats.
func (s *Service) Snapshot(ctx context.Context) Stats {
	st := Stats{
		Season:            s.season,
		CachedResolutions: s.resolutions.Len(),
		Adapters:          make(map[string]bool, len(s.adapters)),
	}
	for id, a := range s.adapters {
		st.Adapters[string(id)] = a.Enabled()
	}
	if s.warmupQueue != nil {
		st.WarmupQueueDepth = s.warmupQueue.Len(ctx)
	}
	return st
}
