// Package config loads the espprc-cli runtime configuration: solver
// parameters, logging, metrics, and the solve-result cache.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the top-level configuration tree.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Solver  SolverConfig  `koanf:"solver"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Cache   CacheConfig   `koanf:"cache"`
}

// AppConfig holds general process identification.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// SolverConfig controls the label-setting engine's defaults.
type SolverConfig struct {
	Capacity    int           `koanf:"capacity"`
	SortArcs    bool          `koanf:"sort_arcs"`     // Graph.SortOutgoing before solving
	MaxPops     int           `koanf:"max_pops"`      // 0 = unlimited, see engine.WithBudget
	SolveBudget time.Duration `koanf:"solve_budget"`  // reserved for a future wall-clock budget
}

// LogConfig controls level, format, and destination of the process logger.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig controls the Prometheus exporter.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Addr      string `koanf:"addr"` // e.g. ":9090"
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig controls the solve-result cache (pkg/cache).
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Driver     string        `koanf:"driver"` // redis, memory, none
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
	MaxEntries int           `koanf:"max_entries"` // for the in-memory driver
}

// Address returns the cache backend's network address.
func (c CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration for structural errors, collecting all
// violations rather than failing on the first.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}
	if c.Solver.Capacity <= 0 {
		errs = append(errs, fmt.Sprintf("solver.capacity must be positive, got %d", c.Solver.Capacity))
	}
	if c.Solver.MaxPops < 0 {
		errs = append(errs, "solver.max_pops must be non-negative")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	validDrivers := map[string]bool{"redis": true, "memory": true, "none": true, "": true}
	if !validDrivers[strings.ToLower(c.Cache.Driver)] {
		errs = append(errs, fmt.Sprintf("cache.driver must be one of: redis, memory, none, got %s", c.Cache.Driver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsDevelopment reports whether the configured environment is development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
