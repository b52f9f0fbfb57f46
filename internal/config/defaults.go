package config

const (
	defaultDataDir      = "~/.local/share/emblem"
	defaultMaxIcons     = 10
	defaultMaxFileBytes = 2 * 1024 * 1024
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Limits: Limits{
			MaxIcons:     defaultMaxIcons,
			MaxFileBytes: defaultMaxFileBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
