package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Data source names accepted by DATA_SOURCE.
const (
	SourceMock     = "mock"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
	SourceRedis    = "redis"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Data source selection
	DataSource      string
	MockFetchDelay  time.Duration
	MockCreateDelay time.Duration
	SeedFile        string

	// Database configuration
	DBHost              string
	DBPort              int
	DBUser              string
	DBPassword          string
	DBName              string
	DBSSLMode           string
	DBMaxConns          int32
	DBMinConns          int32
	DBMaxConnLifetime   time.Duration
	DBMaxConnIdleTime   time.Duration
	DBHealthCheckPeriod time.Duration
	DBMigrationsPath    string
	DBAutoMigrate       bool

	// SQLite configuration
	SQLitePath string

	// Redis configuration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string

	// Store configuration
	StaleTime       time.Duration
	DefaultUsername string

	// Logging configuration
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		ReadTimeout:         getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:        getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:         getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		DataSource:          strings.ToLower(getEnv("DATA_SOURCE", SourceMock)),
		MockFetchDelay:      getEnvDuration("MOCK_FETCH_DELAY", 800*time.Millisecond),
		MockCreateDelay:     getEnvDuration("MOCK_CREATE_DELAY", time.Second),
		SeedFile:            getEnv("SEED_FILE", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnvInt("DB_PORT", 5432),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "content_hub"),
		DBSSLMode:           getEnv("DB_SSL_MODE", "disable"),
		DBMaxConns:          int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:          int32(getEnvInt("DB_MIN_CONNS", 2)),
		DBMaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		DBMaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		DBHealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		DBMigrationsPath:    getEnv("DB_MIGRATIONS_PATH", "./migrations"),
		DBAutoMigrate:       getEnvBool("DB_AUTO_MIGRATE", false),
		SQLitePath:          getEnv("SQLITE_PATH", "./content-hub.db"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisNamespace:      getEnv("REDIS_NAMESPACE", "contenthub"),
		StaleTime:           getEnvDuration("STALE_TIME", 5*time.Minute),
		DefaultUsername:     getEnv("DEFAULT_USERNAME", "Anonymous User"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSource returns a copy of the configuration using another data source.
func (c *Config) WithSource(source string) (*Config, error) {
	next := *c
	next.DataSource = strings.ToLower(source)
	if err := next.validate(); err != nil {
		return nil, err
	}
	return &next, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	switch c.DataSource {
	case SourceMock:
		if c.MockFetchDelay < 0 || c.MockCreateDelay < 0 {
			return fmt.Errorf("MOCK_FETCH_DELAY and MOCK_CREATE_DELAY must not be negative")
		}
	case SourcePostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case SourceRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
		if c.RedisNamespace == "" {
			return fmt.Errorf("REDIS_NAMESPACE is required")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be one of: mock, postgres, sqlite, redis (got %q)", c.DataSource)
	}
	if c.StaleTime <= 0 {
		return fmt.Errorf("STALE_TIME must be positive")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as int with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as bool with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
