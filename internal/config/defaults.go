package config

// Defaults returns a config skeleton; telegram credentials and the
// server command must still be filled in before the bridge will start.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Command: "java",
			Args:    []string{"-jar", "server.jar", "nogui"},
			Type:    "default",
		},
		LogLevel: "info",
		Auth: AuthConfig{
			DBPath:        "~/.temicross/auth.db",
			WindowSeconds: 120,
		},
		Updates: UpdatesConfig{
			IntervalMinutes: 10,
		},
	}
}
