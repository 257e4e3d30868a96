package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/cache"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/http/api"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/adapters/source"
	service "github.com/rumbita1974/Futbolai-ES-sub000/internal/app"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/config"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/classify"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/merge"
	"github.com/rumbita1974/Futbolai-ES-sub000/internal/domain/model"
	"github.com/rumbita1974/Futbolai-ES-sub000/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry in
	// pkg/metrics carries everything we expose.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	adapters, err := buildAdapters(cfg)
	if err != nil {
		os.Stderr.WriteString("failed to build source adapters: " + err.Error() + "\n")
		return
	}

	resolutions := cache.New[model.Resolution](
		cache.WithName[model.Resolution]("resolutions"),
		cache.WithTTL[model.Resolution](time.Duration(cfg.ResolutionTTLSeconds)*time.Second),
		cache.WithSweepInterval[model.Resolution](time.Duration(cfg.SweepIntervalSeconds)*time.Second),
	)

	svc := service.New(
		classify.New(),
		merge.New(merge.WithSuspiciousSurnames(cfg.SuspiciousSurnames)),
		adapters,
		service.WithSeason(cfg.Season),
		service.WithResolutionCache(resolutions),
		service.WithWarmupSubjects(cfg.WarmupSubjects),
		service.WithWarmupWorkers(cfg.WarmupWorkerCount),
		service.WithWarmupQueueCapacity(cfg.WarmupQueueSize),
		service.WithWarmupRate(cfg.WarmupRatePerSecond),
		service.WithLogger(loggerInstance.Named("resolver")),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildAdapters wires the five source adapters from configuration.
// Each adapter gets its own raw-fact cache so a slow or flaky source
// only ever invalidates its own entries.
func buildAdapters(cfg *config.Config) ([]source.Adapter, error) {
	adapterCache := func(name string) *cache.Store[*model.RawFacts] {
		return cache.New[*model.RawFacts](
			cache.WithName[*model.RawFacts](name),
			cache.WithTTL[*model.RawFacts](time.Duration(cfg.AdapterTTLSeconds)*time.Second),
			cache.WithSweepInterval[*model.RawFacts](time.Duration(cfg.SweepIntervalSeconds)*time.Second),
		)
	}

	static, err := source.NewStaticTableAdapter(cfg.StaticTablePath,
		source.WithCache(adapterCache("static_table")),
	)
	if err != nil {
		return nil, err
	}

	return []source.Adapter{
		source.NewSportsAPIAdapter(cfg.SportsAPIBaseURL, cfg.SportsAPIToken,
			source.WithTimeout(time.Duration(cfg.SportsAPITimeoutMS)*time.Millisecond),
			source.WithCache(adapterCache("sports_api")),
		),
		source.NewEncyclopediaAdapter(cfg.EncyclopediaBaseURL,
			source.WithTimeout(time.Duration(cfg.EncyclopediaTimeoutMS)*time.Millisecond),
			source.WithCache(adapterCache("encyclopedia")),
		),
		source.NewGenerativeAdapter(source.GenerativeConfig{
			APIKey:  cfg.GenerativeAPIKey,
			BaseURL: cfg.GenerativeBaseURL,
			Model:   cfg.GenerativeModel,
		},
			source.WithTimeout(time.Duration(cfg.GenerativeTimeoutMS)*time.Millisecond),
			source.WithCache(adapterCache("generative")),
		),
		static,
		source.NewCommunityDBAdapter(cfg.CommunityBaseURL,
			source.WithTimeout(time.Duration(cfg.CommunityTimeoutMS)*time.Millisecond),
			source.WithCache(adapterCache("community_db")),
		),
	}, nil
}
