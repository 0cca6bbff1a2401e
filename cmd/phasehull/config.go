package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/phasehull/hullcache"
	"github.com/katalvlaran/phasehull/stability"
)

// Config holds the environment defaults. Command-line flags override them.
type Config struct {
	Tolerance       float64                   `env:"PHASEHULL_TOLERANCE" envDefault:"1e-7"`
	ReferencePolicy stability.ReferencePolicy `env:"PHASEHULL_REFERENCE_POLICY" envDefault:"zero"`
	Threshold       float64                   `env:"PHASEHULL_THRESHOLD" envDefault:"0.1"`
	LogLevel        slog.Level                `env:"PHASEHULL_LOG_LEVEL" envDefault:"info"`
	CacheSize       int                       `env:"PHASEHULL_CACHE_SIZE" envDefault:"64"`
}

// ParseConfig loads Config from environ, or from the process environment
// when environ is nil.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if !(cfg.Tolerance > 0 && cfg.Tolerance < 1) {
		return Config{}, fmt.Errorf("parse env: PHASEHULL_TOLERANCE=%g: %w", cfg.Tolerance, stability.ErrInvalidTolerance)
	}
	if cfg.CacheSize < 1 {
		return Config{}, fmt.Errorf("parse env: PHASEHULL_CACHE_SIZE=%d: %w", cfg.CacheSize, hullcache.ErrInvalidSize)
	}

	return cfg, nil
}
