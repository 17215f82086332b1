// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server and travelctl.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// RedisURL is the session store connection string. Required.
	RedisURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SessionTTL is how long a bearer token stays valid. Defaults to 30 days.
	SessionTTL time.Duration

	// MaxBodyBytes caps request bodies, uploads included. Defaults to 10 MiB.
	MaxBodyBytes int64

	// AuthRateLimit is the number of register/login attempts allowed per IP
	// per minute. Defaults to 10.
	AuthRateLimit int

	Storage Storage
}

// Storage configures the object store for destination images.
type Storage struct {
	// Driver is "local" (default) or "s3".
	Driver string

	// Bucket is the bucket (or local subdirectory) name. Defaults to "destinations".
	Bucket string

	// LocalDir is the root directory for the local driver. Defaults to "./data".
	LocalDir string

	// PublicURL is the base URL stored keys are reachable under.
	// Defaults to the API's own /files route.
	PublicURL string

	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Storage: Storage{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			Bucket:    getEnv("STORAGE_BUCKET", "destinations"),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./data"),
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}
	cfg.Storage.PublicURL = getEnv("STORAGE_PUBLIC_URL", "http://localhost:"+cfg.Port+"/files")

	var err error
	if cfg.SessionTTL, err = parseEnv("SESSION_TTL", 30*24*time.Hour, time.ParseDuration); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes, err = parseEnv("MAX_BODY_BYTES", int64(10<<20), parseInt64); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimit, err = parseEnv("AUTH_RATE_LIMIT", 10, strconv.Atoi); err != nil {
		return Config{}, err
	}
	if cfg.Storage.ForcePathStyle, err = parseEnv("S3_FORCE_PATH_STYLE", false, strconv.ParseBool); err != nil {
		return Config{}, err
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RedisURL == "" {
		missing = append(missing, "REDIS_URL")
	}
	if cfg.Storage.Driver == "s3" {
		for _, kv := range [][2]string{
			{"S3_REGION", cfg.Storage.Region},
			{"S3_ACCESS_KEY", cfg.Storage.AccessKey},
			{"S3_SECRET_KEY", cfg.Storage.SecretKey},
		} {
			if kv[1] == "" {
				missing = append(missing, kv[0])
			}
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch cfg.Storage.Driver {
	case "local", "s3":
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be local or s3, got %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

// LoadDatabaseURL reads only DATABASE_URL. travelctl uses it for commands
// that never touch Redis or the object store.
func LoadDatabaseURL() (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "", fmt.Errorf("required environment variables not set: DATABASE_URL")
	}
	return dsn, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseEnv parses key with parse, returning fallback when it is unset.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := parse(raw)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
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
