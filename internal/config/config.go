// Package config holds all runtime configuration, loaded from environment
// variables with an optional local .env file.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the process configuration.
type Config struct {
	// Server
	Port int

	// Storage
	StorageDriver string // sqlite | postgres
	SQLitePath    string
	PostgresURL   string

	// Spotify app credentials
	SpotifyClientID     string
	SpotifyClientSecret string

	// Narrative generation
	OpenAIBaseURL string
	OpenAIAPIKey  string

	// Sessions
	JWTSecret string

	// Background analysis
	Workers   int
	QueueSize int
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit env vars always win because godotenv never overrides.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN config: could not load .env: %v", err)
	}

	return Config{
		Port: envInt("PORT", 8080),

		StorageDriver: envStr("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    envStr("SQLITE_PATH", "sonifyr.db"),
		PostgresURL:   envStr("DATABASE_URL", ""),

		SpotifyClientID:     envStr("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: envStr("SPOTIFY_CLIENT_SECRET", ""),

		OpenAIBaseURL: envStr("OPENAI_BASE_URL", ""),
		OpenAIAPIKey:  envStr("OPENAI_API_KEY", ""),

		JWTSecret: envStr("JWT_SECRET", ""),

		Workers:   envInt("ANALYSIS_WORKERS", 2),
		QueueSize: envInt("ANALYSIS_QUEUE_SIZE", 100),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
