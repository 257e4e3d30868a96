// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Season tags every resolution, e.g. "2025/26".
	Season string `koanf:"season"`

	// ResolutionTTLSeconds bounds how long a whole resolution stays cached.
	ResolutionTTLSeconds int `koanf:"resolution_ttl_seconds"`

	// AdapterTTLSeconds bounds per-adapter raw-fact caches.
	AdapterTTLSeconds int `koanf:"adapter_ttl_seconds"`

	// SweepIntervalSeconds sets how often stale cache entries are evicted.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds"`

	// Per-adapter fetch timeouts. A slow adapter degrades to absent,
	// it never blocks the rest of the fan-out.
	GenerativeTimeoutMS   int `koanf:"generative_timeout_ms"`
	EncyclopediaTimeoutMS int `koanf:"encyclopedia_timeout_ms"`
	SportsAPITimeoutMS    int `koanf:"sports_api_timeout_ms"`
	CommunityTimeoutMS    int `koanf:"community_timeout_ms"`

	// Credentials. An adapter missing its credential self-disables and
	// is excluded from candidate lists for the rest of the process.
	GenerativeAPIKey string `koanf:"generative_api_key"`
	GenerativeModel  string `koanf:"generative_model"`
	SportsAPIToken   string `koanf:"sports_api_token"`

	// Base URLs, overridable so tests can point adapters at fakes.
	GenerativeBaseURL   string `koanf:"generative_base_url"`
	EncyclopediaBaseURL string `koanf:"encyclopedia_base_url"`
	SportsAPIBaseURL    string `koanf:"sports_api_base_url"`
	CommunityBaseURL    string `koanf:"community_base_url"`

	// StaticTablePath points at an external fact-table YAML. Empty
	// means the embedded table ships with the binary.
	StaticTablePath string `koanf:"static_table_path"`

	// SuspiciousSurnames overrides the curated cross-border collision
	// list used by the reconciler.
	SuspiciousSurnames []string `koanf:"suspicious_surnames"`

	// Warmup pipeline: subjects prefetched into cache at startup.
	WarmupSubjects    []string `koanf:"warmup_subjects"`
	WarmupWorkerCount int      `koanf:"warmup_worker_count"`
	WarmupQueueSize   int      `koanf:"warmup_queue_size"`

	// WarmupRatePerSecond paces warmup fetches to respect third-party
	// rate limits.
	WarmupRatePerSecond float64 `koanf:"warmup_rate_per_second"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		Season:                "2025/26",
		ResolutionTTLSeconds:  1800,
		AdapterTTLSeconds:     3600,
		SweepIntervalSeconds:  300,
		GenerativeTimeoutMS:   8000,
		EncyclopediaTimeoutMS: 4000,
		SportsAPITimeoutMS:    5000,
		CommunityTimeoutMS:    3000,
		GenerativeModel:       "gpt-4o-mini",
		WarmupWorkerCount:     runtime.NumCPU(),
		WarmupQueueSize:       256,
		WarmupRatePerSecond:   2,
	}
}
