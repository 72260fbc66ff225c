package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	DatabasePath       string
	JWTSecret          string
	TokenTTL           time.Duration
	EventRetentionDays int
	CORSOrigin         string

	// Optional superuser bootstrap. When all three are set, a staff +
	// superuser account is created at startup if the email is unused.
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	retention, err := strconv.Atoi(getEnv("EVENT_RETENTION_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:         port,
		DatabasePath:       getEnv("DATABASE_PATH", "./profiles.db"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:           tokenTTL,
		EventRetentionDays: retention,
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminName:          os.Getenv("ADMIN_NAME"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
