package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4271,
			Host: "localhost",
		},
		API: APIConfig{
			URL: "http://localhost:4272",
		},
		Cache: CacheConfig{
			TTLSeconds: 60,
			MaxEntries: 256,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/folio",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
