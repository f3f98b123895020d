package config

const (
	// DefaultDatabasePath is the default path of the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultEnvFile is loaded before the environment is read, when present
	DefaultEnvFile = ".env"
)
