package config

import "os"

// Recognized environment names.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config is the environment-provided configuration surface.
type Config struct {
	Port   string // HTTP listen port
	DBPath string // SQLite database file
	Env    string // development|test|production
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		Port:   getenv("PORT", "8080"),
		DBPath: getenv("TODO_DB_PATH", "todos.db"),
		Env:    getenv("APP_ENV", EnvDevelopment),
	}
}

// IsTest reports whether the store should drop and recreate its schema on
// open, so every test run starts from a clean database.
func (c Config) IsTest() bool { return c.Env == EnvTest }

// IsDev reports whether development-only surfaces (the seed endpoint) are
// enabled.
func (c Config) IsDev() bool { return c.Env == EnvDevelopment || c.Env == EnvTest }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
