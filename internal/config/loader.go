package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FUTBOLAI_CONFIG is set
//  3. env (prefix FUTBOLAI_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FUTBOLAI_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: FUTBOLAI_ADDR, FUTBOLAI_SEASON, ...
	// Underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider("FUTBOLAI_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "futbolai_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ResolutionTTLSeconds <= 0:
		return fmt.Errorf("%w: resolution_ttl_seconds must be positive", ErrInvalidConfig)
	case c.AdapterTTLSeconds <= 0:
		return fmt.Errorf("%w: adapter_ttl_seconds must be positive", ErrInvalidConfig)
	case c.WarmupWorkerCount <= 0:
		return fmt.Errorf("%w: warmup_worker_count must be positive", ErrInvalidConfig)
	case c.WarmupRatePerSecond <= 0:
		return fmt.Errorf("%w: warmup_rate_per_second must be positive", ErrInvalidConfig)
	}
	return nil
}
