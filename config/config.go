// Package config collects runtime settings from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds every setting the storefront modules need. It is built once
// in main and passed to module constructors.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Receipt  ReceiptConfig
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path  string
	Debug bool
}

// HTTPConfig configures the fiber server.
type HTTPConfig struct {
	Port          int
	AuthRateLimit int
}

// CacheConfig configures the optional Redis read cache.
// An empty RedisAddr disables caching.
type CacheConfig struct {
	RedisAddr string
	Prefix    string
	TTL       time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// AuthConfig configures token issuance and the seeded admin account.
type AuthConfig struct {
	SecretKey       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AdminEmail      string
	AdminPassword   string
}

// ReceiptConfig configures receipt delivery.
type ReceiptConfig struct {
	Sender     string
	SenderName string
}

// Load reads the configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		Database: DatabaseConfig{
			Path:  getEnv("DB_PATH", "storefront.db"),
			Debug: getEnvBool("DB_DEBUG", false),
		},
		HTTP: HTTPConfig{
			Port:          getEnvInt("HTTP_PORT", 3000),
			AuthRateLimit: getEnvInt("AUTH_RATE_LIMIT", 20),
		},
		Cache: CacheConfig{
			RedisAddr: getEnv("REDIS_ADDR", ""),
			Prefix:    getEnv("CACHE_PREFIX", "storefront:"),
			TTL:       getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Issuer:          getEnv("JWT_ISSUER", "storefront-demo"),
			AccessTokenTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTokenTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
			AdminEmail:      getEnv("ADMIN_EMAIL", ""),
			AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
		},
		Receipt: ReceiptConfig{
			Sender:     getEnv("RECEIPT_SENDER", "noreply@storefront.local"),
			SenderName: getEnv("RECEIPT_SENDER_NAME", "Storefront"),
		},
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
