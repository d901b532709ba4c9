package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Blob storage configuration
	Storage StorageConfig

	// Upload handling configuration
	Upload UploadConfig

	// Seeded super-admin account
	Seed SeedConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig holds blob store connection settings
type StorageConfig struct {
	RedisURL  string
	Namespace string
}

// UploadConfig holds spreadsheet upload settings
type UploadConfig struct {
	MaxUploadSize int64 // in bytes
	PreviewRows   int
	RecentLimit   int
}

// SeedConfig holds the super-admin account inserted on first run.
// Defaults match the shipped account so existing stored blobs keep working.
type SeedConfig struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Namespace: getEnv("STORAGE_NAMESPACE", "excel-analyzer"),
		},
		Upload: UploadConfig{
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 20*1024*1024), // 20MB
			PreviewRows:   getIntEnv("UPLOAD_PREVIEW_ROWS", 10),
			RecentLimit:   getIntEnv("UPLOAD_RECENT_LIMIT", 20),
		},
		Seed: SeedConfig{
			ID:       getEnv("SEED_ADMIN_ID", "superadmin_1"),
			Name:     getEnv("SEED_ADMIN_NAME", "Super Admin"),
			Email:    getEnv("SEED_ADMIN_EMAIL", "superadmin123@excelviz.com"),
			Password: getEnv("SEED_ADMIN_PASSWORD", "superadmin123"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.Seed.Email == "" || c.Seed.Password == "" {
		return fmt.Errorf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	if c.Upload.PreviewRows < 0 {
		return fmt.Errorf("UPLOAD_PREVIEW_ROWS must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
