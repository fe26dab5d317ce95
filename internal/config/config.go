// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Redis (cart sessions + catalog cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// S3-compatible object storage (product and content images)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string // optional CDN/direct URL for public files
	S3Folder    string // key prefix for uploaded files

	// Auth tokens
	JWTSecret string
	JWTExpiry time.Duration
}

// Load reads configuration from environment variables, applying development
// defaults where a value is not set. It fails when a production deployment
// is missing credentials that have no safe default.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOr("HOST", "0.0.0.0"),
		Port: envOr("PORT", "8080"),
		Env:  envOr("APP_ENV", "development"),

		DBHost:     envOr("POSTGRES_HOST", "localhost"),
		DBPort:     envOr("POSTGRES_PORT", "5432"),
		DBUser:     envOr("POSTGRES_USER", "threadbox"),
		DBPassword: envOr("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOr("POSTGRES_DB", "threadbox"),

		RedisHost:     envOr("REDIS_HOST", "localhost"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOr("S3_REGION", "eu-central"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOr("S3_BUCKET", "threadbox-public"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
		S3Folder:    envOr("S3_FOLDER", "threadbox"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	expiryHours, err := strconv.Atoi(envOr("JWT_EXPIRY_HOURS", "24"))
	if err != nil || expiryHours <= 0 {
		return nil, fmt.Errorf("config: invalid JWT_EXPIRY_HOURS %q", os.Getenv("JWT_EXPIRY_HOURS"))
	}
	cfg.JWTExpiry = time.Duration(expiryHours) * time.Hour

	// A signing secret is mandatory outside development; in development a
	// well-known value keeps local setup friction-free.
	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return nil, fmt.Errorf("config: JWT_SECRET must be set in %s", cfg.Env)
		}
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	return cfg, nil
}

// Addr returns the host:port address the HTTP server listens on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// RedisAddr returns the Redis host:port address.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsDev returns true when running in the development environment.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOr reads an environment variable or returns the fallback value.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
