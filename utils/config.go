package utils

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything read from the environment at startup. It is built
// once in main and passed to the components that need it; no package keeps
// ambient configuration state.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	JWTExpiration  time.Duration
	SendgridAPIKey string
	EmailSender    string
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "ecommerce"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiration:  24 * time.Hour,
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    os.Getenv("EMAIL_SENDER"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	if raw := os.Getenv("JWT_EXPIRATION"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION: %w", err)
		}
		cfg.JWTExpiration = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
