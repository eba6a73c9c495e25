package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

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

	// JWT configuration
	JWTSecret            string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration

	// Cache configuration
	CacheTTL time.Duration

	// Pagination configuration
	PageSize    int
	MaxPageSize int

	// Frontend configuration: base URL the server-side API client calls
	APIBaseURL   string
	TemplateGlob string

	// CORS configuration
	CORSAllowOrigins []string

	// Logging configuration
	LogLevel string
}

// Load loads configuration from the environment, reading a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		ReadTimeout:          getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:         getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:          getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnvInt("DB_PORT", 5432),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", "postgres"),
		DBName:               getEnv("DB_NAME", "samplemed_blog"),
		DBSSLMode:            getEnv("DB_SSL_MODE", "disable"),
		DBMaxConns:           int32(getEnvInt("DB_MAX_CONNS", 25)),
		DBMinConns:           int32(getEnvInt("DB_MIN_CONNS", 5)),
		DBMaxConnLifetime:    getEnvDuration("DB_MAX_CONN_LIFETIME", time.Hour),
		DBMaxConnIdleTime:    getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		DBHealthCheckPeriod:  getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		AccessTokenLifetime:  getEnvDuration("JWT_ACCESS_TOKEN_LIFETIME", 60*time.Minute),
		RefreshTokenLifetime: getEnvDuration("JWT_REFRESH_TOKEN_LIFETIME", 24*time.Hour),
		CacheTTL:             getEnvDuration("CACHE_TTL", 5*time.Minute),
		PageSize:             getEnvInt("PAGE_SIZE", 10),
		MaxPageSize:          getEnvInt("MAX_PAGE_SIZE", 100),
		APIBaseURL:           getEnv("API_BASE_URL", "http://localhost:8080"),
		TemplateGlob:         getEnv("TEMPLATE_GLOB", "web/templates/*.html"),
		CORSAllowOrigins:     []string{getEnv("CORS_ALLOW_ORIGIN", "*")},
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be at least 1")
	}
	if c.MaxPageSize < c.PageSize {
		return fmt.Errorf("MAX_PAGE_SIZE must be at least PAGE_SIZE")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
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

// getEnvDuration gets an environment variable as duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
