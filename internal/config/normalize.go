package config

import "strings"

// normalize fills empty fields from defaults and expands path values.
func (c *Config) normalize() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	dataDir, err := ExpandPath(c.Paths.DataDir)
	if err != nil {
		return err
	}
	c.Paths.DataDir = dataDir

	logDir, err := ExpandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	if c.Health.WindowSize == 0 {
		c.Health.WindowSize = defaultHealthWindowSize
	}
	if c.Health.MaxDroppedFrames == 0 {
		c.Health.MaxDroppedFrames = defaultHealthMaxDroppedFrames
	}
	if c.Health.MaxLatencyMS == 0 {
		c.Health.MaxLatencyMS = defaultHealthMaxLatencyMS
	}
	if c.Health.MinBitrateRatio == 0 {
		c.Health.MinBitrateRatio = defaultHealthMinBitrateRatio
	}
	if c.Playlist.Version == 0 {
		c.Playlist.Version = defaultPlaylistVersion
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
