package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config gathers the environment-driven settings. JWT_SECRET and
// DATA_ENCRYPTION_KEY stay in the environment and are read where used.
type Config struct {
	Port               string
	DatabaseURL        string
	FrontendURL        string
	WarningThreshold   float64
	LimitCheckInterval time.Duration
	RateLimit          int
	RateLimitWindow    time.Duration
}

// Load reads configuration from the environment, applying defaults for
// everything except DATABASE_URL and JWT_SECRET.
func Load() (Config, error) {
	cfg := Config{
		Port:               envOr("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		FrontendURL:        envOr("FRONTEND_URL", "http://localhost:3000"),
		WarningThreshold:   80,
		LimitCheckInterval: 5 * time.Minute,
		RateLimit:          100,
		RateLimitWindow:    time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if os.Getenv("JWT_SECRET") == "" {
		return Config{}, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if v := os.Getenv("LIMIT_WARNING_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold <= 0 || threshold > 100 {
			return Config{}, fmt.Errorf("invalid LIMIT_WARNING_THRESHOLD %q", v)
		}
		cfg.WarningThreshold = threshold
	}

	if v := os.Getenv("LIMIT_CHECK_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil || interval <= 0 {
			return Config{}, fmt.Errorf("invalid LIMIT_CHECK_INTERVAL %q", v)
		}
		cfg.LimitCheckInterval = interval
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
