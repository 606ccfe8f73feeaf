// Package config loads, validates, and normalizes streamhub configuration.
//
// Configuration is TOML with one section per subsystem:
//   - Paths: data and log directories
//   - Health: trailing-window size and degradation thresholds
//   - Playlist: master playlist rendering knobs
//   - Logging: log format and level
//
// Load resolves ~/.config/streamhub/config.toml, then ./streamhub.toml, then
// falls back to defaults when neither exists. All path fields are expanded and
// absolute after Load returns.
package config
