package config

const (
	defaultStoreRoot = "~/.local/share/coffer/store"
	defaultKeyFile   = "~/.config/coffer/secret.key"
	defaultLogLevel  = "info"
	defaultLogFormat = "auto"

	// activeDatabaseName is the database file created under the store
	// root when storage.database is left empty.
	activeDatabaseName = "active.db"

	// DefaultKeyBytes is the secret key length keygen writes.
	DefaultKeyBytes = 64
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			Root:    defaultStoreRoot,
			KeyFile: defaultKeyFile,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
