// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the storefront service
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `envconfig:"NAME" default:"Coffee Storefront"`
	Version     string `envconfig:"VERSION" default:"1.0.0"`
	Environment string `envconfig:"ENV" default:"development"`
	Debug       bool   `envconfig:"DEBUG" default:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	ReadTimeout    time.Duration `split_words:"true" default:"30s"`
	WriteTimeout   time.Duration `split_words:"true" default:"30s"`
	IdleTimeout    time.Duration `split_words:"true" default:"60s"`
	RequestTimeout time.Duration `split_words:"true" default:"30s"`
	MaxBodyBytes   int64         `split_words:"true" default:"1048576"`
}

// CatalogConfig points at the remote coffee-shop API
type CatalogConfig struct {
	BaseURL string `split_words:"true" default:"https://coffee-shop-backend-k3un.onrender.com/api/v1"`
	// Zero means no client-side timeout; the request lives as long as its context.
	Timeout  time.Duration `default:"0s"`
	CacheTTL time.Duration `split_words:"true" default:"5m"`
}

// StorageConfig selects the durable key-value store backing carts and sessions
type StorageConfig struct {
	Driver     string        `default:"memory"`
	KeyPrefix  string        `split_words:"true" default:"storefront"`
	SessionTTL time.Duration `split_words:"true" default:"720h"`

	// SweepInterval paces expiry for drivers without native TTLs (postgres)
	SweepInterval time.Duration `split_words:"true" default:"1h"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string `default:"localhost"`
	Port         string `default:"6379"`
	Password     string `default:""`
	DB           int    `default:"0"`
	PoolSize     int    `split_words:"true" default:"10"`
	MinIdleConns int    `split_words:"true" default:"5"`
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string        `default:"localhost"`
	Port         string        `default:"5432"`
	Name         string        `default:"storefront_db"`
	User         string        `default:"storefront_user"`
	Password     string        `default:"storefront_password"`
	SSLMode      string        `split_words:"true" default:"disable"`
	MaxOpenConns int           `split_words:"true" default:"10"`
	MaxIdleConns int           `split_words:"true" default:"5"`
	MaxLifetime  time.Duration `split_words:"true" default:"300s"`
}

// JWTConfig contains session token configuration
type JWTConfig struct {
	Secret            string        `default:"change-me-storefront-session-signing-key"`
	AccessTokenExpiry time.Duration `envconfig:"ACCESS_EXPIRE" default:"720h"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int      `split_words:"true" default:"120"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	CORSAllowedMethods []string `envconfig:"CORS_ALLOWED_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	CORSAllowedHeaders []string `envconfig:"CORS_ALLOWED_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Session-ID"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `default:"debug"`
	Format string `default:"json"`
}

// Load loads configuration from environment variables and .env file.
// Variables are sectioned by struct, e.g. SERVER_PORT, CATALOG_BASE_URL,
// STORAGE_DRIVER, REDIS_HOST, JWT_SECRET.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis storage driver")
		}
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("DATABASE_HOST, DATABASE_NAME and DATABASE_USER are required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// CatalogURL joins a resource path onto the catalog base URL
func (c *Config) CatalogURL(resource string) string {
	return strings.TrimRight(c.Catalog.BaseURL, "/") + "/" + strings.TrimLeft(resource, "/")
}
