package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the dashboard service settings, loaded from the environment
// with an optional .env file for local development.
type Config struct {
	HTTP struct {
		Addr string
	}
	Env       string // "development" or "production"
	DBEnabled bool
	Database  DatabaseConfig
	Cache     struct {
		Backend    string // "memory" or "redis"
		TTLSeconds int
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	BackendAPIURL string // upstream listings backend, used for project lookups
	AuthToken     string // shared admin token; empty disables auth
}

// DatabaseConfig is the Postgres connection block.
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	SSLMode        string
	ConnectTimeout int // seconds, applied at the driver level
	MaxConns       int
	MaxIdle        int
}

// DSN renders the lib/pq key/value connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode, c.ConnectTimeout,
	)
}

func Load() *Config {
	// Missing .env is fine: production supplies real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Env = getEnv("ENV", "development")

	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "raf_dashboard")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.ConnectTimeout = parseInt(getEnv("DB_CONNECT_TIMEOUT", "5"), 5)
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Cache.Backend = getEnv("CACHE_BACKEND", "memory")
	cfg.Cache.TTLSeconds = parseInt(getEnv("CACHE_TTL_SECONDS", "300"), 300)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.BackendAPIURL = getEnv("BACKEND_API_URL", "")
	cfg.AuthToken = getEnv("AUTH_TOKEN", "")

	return cfg
}

// IsDevelopment reports whether error details may be echoed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
