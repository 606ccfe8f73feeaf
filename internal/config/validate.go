package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateHealth(); err != nil {
		return err
	}
	if err := c.validatePlaylist(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateHealth() error {
	if c.Health.WindowSize < 1 {
		return errors.New("health.window_size must be at least 1")
	}
	if c.Health.MaxDroppedFrames < 0 {
		return errors.New("health.max_dropped_frames must not be negative")
	}
	if c.Health.MaxLatencyMS < 0 {
		return errors.New("health.max_latency_ms must not be negative")
	}
	if c.Health.MinBitrateRatio <= 0 || c.Health.MinBitrateRatio > 1 {
		return errors.New("health.min_bitrate_ratio must be between 0 and 1")
	}
	return nil
}

func (c *Config) validatePlaylist() error {
	if c.Playlist.Version < 1 {
		return errors.New("playlist.version must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
