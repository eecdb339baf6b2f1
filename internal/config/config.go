// Package config resolves runtime settings from the environment and the
// scopes file.
package config

import (
	"os"

	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/stream"
)

type Config struct {
	LogLevel   string
	APIPort    string
	ScopesFile string
	DB         engine.Config
	Stream     stream.Config
}

// FromEnv reads the process environment. Call godotenv.Load first in
// binaries that support a .env file.
func FromEnv() Config {
	return Config{
		LogLevel:   getenv("MDSEARCH_LOG_LEVEL", "info"),
		APIPort:    getenv("MDSEARCH_API_PORT", "8083"),
		ScopesFile: getenv("MDSEARCH_SCOPES_FILE", "scopes.yaml"),
		DB: engine.Config{
			Host:     getenv("MDSEARCH_DB_HOST", "localhost"),
			Port:     getenv("MDSEARCH_DB_PORT", "5432"),
			User:     getenv("MDSEARCH_DB_USER", "mdsearch"),
			Password: os.Getenv("MDSEARCH_DB_PASSWORD"),
			Database: getenv("MDSEARCH_DB_DATABASE", "mdsearch"),
			SSLMode:  getenv("MDSEARCH_DB_SSLMODE", "disable"),
		},
		Stream: stream.Config{
			Provider:      getenv("MDSEARCH_STREAM_PROVIDER", "redis"),
			RedisAddr:     os.Getenv("MDSEARCH_REDIS_ADDR"), // empty means "no stream"
			RedisPassword: os.Getenv("MDSEARCH_REDIS_PASSWORD"),
			Stream:        getenv("MDSEARCH_STREAM", "mdsearch-events"),
			Group:         getenv("MDSEARCH_STREAM_GROUP", "mdsearch"),
			ConsumerName:  getenv("MDSEARCH_STREAM_CONSUMER", "watch-1"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
