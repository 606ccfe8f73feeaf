// Package testsupport provides shared helpers for streamhub tests: temp-dir
// backed configs, store lifecycle management, and stream fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"streamhub/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithHealthWindow overrides the health window size on the test config.
func WithHealthWindow(size int) ConfigOption {
	return func(c *config.Config) {
		c.Health.WindowSize = size
	}
}

// WithHealthThresholds overrides all health thresholds on the test config.
func WithHealthThresholds(maxDropped, maxLatencyMS int, minBitrateRatio float64) ConfigOption {
	return func(c *config.Config) {
		c.Health.MaxDroppedFrames = maxDropped
		c.Health.MaxLatencyMS = maxLatencyMS
		c.Health.MinBitrateRatio = minBitrateRatio
	}
}
