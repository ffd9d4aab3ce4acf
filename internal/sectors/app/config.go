package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL         string        // sqlite path or postgres:// URL (default: sectors.db)
	JWTSecret           string        // Optional: enables bearer auth when set, at least 32 bytes
	Issuer              string        // Token issuer checked on every request (default: sectors)
	CORSOrigins         []string      // Optional: comma separated browser origins
	TrustProxy          bool          // Key rate limits on X-Forwarded-For; only behind a proxy that sets it (default: false)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first; variables already set win.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:         getEnvOrDefault("SECTORS_DATABASE_URL", "sectors.db"),
		JWTSecret:           os.Getenv("SECTORS_JWT_SECRET"),
		Issuer:              getEnvOrDefault("SECTORS_ISSUER", "sectors"),
		CORSOrigins:         splitList(os.Getenv("SECTORS_CORS_ORIGINS")),
		TrustProxy:          getEnvBoolOrDefault("SECTORS_TRUST_PROXY", false),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate catches configuration that would only fail later at request time.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("SECTORS_DATABASE_URL must not be empty")
	}
	return nil
}

// UsesPostgres reports whether DatabaseURL points at postgres rather than a
// sqlite file.
func (c Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
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

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
