package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	StorageDriver    string
	SQLitePath       string
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisPrefix      string
	MemoryQuotaBytes int

	WhatsAppHost      string
	WhatsAppRecipient string
	RestaurantName    string

	AdminEmail    string
	AdminPassword string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:       getEnv("SQLITE_PATH", "burgerhub.db"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPrefix:      getEnv("REDIS_PREFIX", "burgerhub"),
		MemoryQuotaBytes: getEnvInt("MEMORY_QUOTA_BYTES", 5<<20),

		WhatsAppHost:      getEnv("WHATSAPP_HOST", "wa.me"),
		WhatsAppRecipient: getEnv("WHATSAPP_RECIPIENT", "5511999999999"),
		RestaurantName:    getEnv("RESTAURANT_NAME", "KING BURGUER"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@admin.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "123456"),
	}

	switch cfg.StorageDriver {
	case DriverSQLite, DriverPostgres, DriverRedis, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverPostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres driver")
	}
	return cfg, nil
}

// PostgresDSN returns DatabaseURL as a key/value DSN. postgres:// URLs are
// converted, anything else is passed through as-is.
func (c *Config) PostgresDSN() (string, error) {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		dsn, err := pq.ParseURL(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		return dsn, nil
	}
	return c.DatabaseURL, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
