package config

import "os"

// Config holds application configuration loaded from environment variables.
// Command-line flags take precedence over these values.
type Config struct {
	Host     string // PLMSEED_HOST, default "http://localhost:8080"
	User     string // PLMSEED_USER, default "admin"
	Password string // PLMSEED_PASSWORD, default "password"
	Addr     string // PLMSEED_ADDR, default ":8080" (mock server)
	DBPath   string // PLMSEED_DB, default ":memory:" (mock server)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Host:     envOr("PLMSEED_HOST", "http://localhost:8080"),
		User:     envOr("PLMSEED_USER", "admin"),
		Password: envOr("PLMSEED_PASSWORD", "password"),
		Addr:     envOr("PLMSEED_ADDR", ":8080"),
		DBPath:   envOr("PLMSEED_DB", ":memory:"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
