// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool

	// FeedbackPolicy picks which feedback weights the day plan:
	// "located" (every item with a location) or "liked". Defaults to "located".
	FeedbackPolicy string

	// BookingAPIBaseURL is the booking provider's endpoint. Its scheme and
	// host are the only ones BookingAPIKey is sent to.
	BookingAPIBaseURL string

	// BookingAPIKey is appended to booking detail requests to the provider
	// when set. Requires BookingAPIBaseURL.
	BookingAPIKey string

	// BookingTimeout bounds a single booking detail fetch. Defaults to 10s.
	BookingTimeout time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is read first if present; variables
// already set in the environment win over it.
// Every missing or malformed variable is reported in the one returned error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		FeedbackPolicy: strings.ToLower(getEnv("FEEDBACK_POLICY", "located")),
		BookingAPIKey:  os.Getenv("BOOKING_API_KEY"),

		BookingAPIBaseURL: os.Getenv("BOOKING_API_BASE_URL"),
	}

	var errs error
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		errs = multierr.Append(errs, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", ")))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", cfg.LogLevel))
	}

	switch cfg.FeedbackPolicy {
	case "located", "liked":
	default:
		errs = multierr.Append(errs, fmt.Errorf("FEEDBACK_POLICY: must be located or liked, got %q", cfg.FeedbackPolicy))
	}

	if cfg.BookingAPIBaseURL != "" {
		u, err := url.Parse(cfg.BookingAPIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = multierr.Append(errs, fmt.Errorf("BOOKING_API_BASE_URL: must be an http(s) URL with a host, got %q", cfg.BookingAPIBaseURL))
		}
	} else if cfg.BookingAPIKey != "" {
		errs = multierr.Append(errs, errors.New("BOOKING_API_KEY: requires BOOKING_API_BASE_URL"))
	}

	var err error
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("MAX_BODY_BYTES: must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES")))
	}
	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "false")); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("MIGRATE_ON_START: must be a boolean, got %q", os.Getenv("MIGRATE_ON_START")))
	}
	if cfg.BookingTimeout, err = time.ParseDuration(getEnv("BOOKING_TIMEOUT", "10s")); err != nil || cfg.BookingTimeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("BOOKING_TIMEOUT: must be a positive duration, got %q", os.Getenv("BOOKING_TIMEOUT")))
	}

	if errs != nil {
		return Config{}, errs
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
