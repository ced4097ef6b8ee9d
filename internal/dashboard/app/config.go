package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/zamanihq/dashboard/pkg/httpx"
)

type Config struct {
	BackendAPIURL       string        // Required: server-only backend origin the proxy forwards to
	PublicAPIBaseURL    string        // Optional: client-visible API origin (NEXT_PUBLIC_API_BASE_URL)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	StaticDir           string        // Optional: dashboard build to serve behind the page gate
	CORSAllowedOrigins  []string      // Optional: origins allowed to call the gateway cross-origin
	RedisAddrs          []string      // Optional: Redis address(es) for the shared query cache
	RedisPassword       string        // Optional: Redis password
	RedisNamespace      string        // Optional: key prefix in Redis (default: zamani-dashboard)
	QueryStaleTime      time.Duration // How long cached queries are served (default: 30s)
	CacheSweepInterval  time.Duration // How often expired in-memory cache entries are dropped (default: 1m)
}

var ErrMissingBackendURL = errors.New("BACKEND_API_URL is required")

// LoadConfig reads the environment, after loading envFile when it exists.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		BackendAPIURL:       strings.TrimRight(os.Getenv("BACKEND_API_URL"), "/"),
		PublicAPIBaseURL:    os.Getenv("NEXT_PUBLIC_API_BASE_URL"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		StaticDir:           os.Getenv("STATIC_DIR"),
		CORSAllowedOrigins:  httpx.ParseCommaSeparated(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RedisAddrs:          httpx.ParseCommaSeparated(os.Getenv("REDIS_ADDR")),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisNamespace:      getEnvOrDefault("REDIS_NAMESPACE", "zamani-dashboard"),
		QueryStaleTime:      getEnvDurationOrDefault("QUERY_STALE_TIME", 30*time.Second),
		CacheSweepInterval:  getEnvDurationOrDefault("CACHE_SWEEP_INTERVAL", time.Minute),
	}

	if cfg.BackendAPIURL == "" {
		return cfg, ErrMissingBackendURL
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
