package config

const (
	defaultDataDir = "~/.local/share/streamhub"
	defaultLogDir  = "~/.local/share/streamhub/logs"

	defaultHealthWindowSize       = 5
	defaultHealthMaxDroppedFrames = 200
	defaultHealthMaxLatencyMS     = 5000
	defaultHealthMinBitrateRatio  = 0.5

	defaultPlaylistVersion = 3

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Health: Health{
			WindowSize:       defaultHealthWindowSize,
			MaxDroppedFrames: defaultHealthMaxDroppedFrames,
			MaxLatencyMS:     defaultHealthMaxLatencyMS,
			MinBitrateRatio:  defaultHealthMinBitrateRatio,
		},
		Playlist: Playlist{
			Version: defaultPlaylistVersion,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
