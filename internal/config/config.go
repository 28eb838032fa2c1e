package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries everything main needs to wire the service. Values come from
// the environment (.env is loaded by main via godotenv). Constructors receive
// their piece of it explicitly; there are no package-level globals.
type Config struct {
	DatabaseURL string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	Port        string
	TokenTTL    time.Duration
}

// Load reads the environment and fails fast on missing required values.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "estate"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        getenv("PORT", "3000"),
		TokenTTL:    time.Hour,
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
