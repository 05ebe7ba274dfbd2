// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Email    EmailConfig
	Import   ImportConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds database configuration.
// Driver selects the backing store: "sqlite" (default, single-box deployment)
// or "postgres".
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration for the ledger view cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// EmailConfig holds payment reminder email configuration.
type EmailConfig struct {
	ResendAPIKey  string
	FromName      string
	FromEmail     string
	WorkerEnabled bool
	PollInterval  time.Duration
	BatchSize     int
}

// ImportConfig holds POS workbook import configuration.
type ImportConfig struct {
	ReceiptsSheet string
	ItemsSheet    string
	MaxUploadMB   int
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			DSN:             getEnv("DB_DSN", "credit_ledger.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Email: EmailConfig{
			ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
			FromName:      getEnv("RESEND_FROM_NAME", "Credit Ledger"),
			FromEmail:     getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			WorkerEnabled: getEnvAsBool("REMINDER_WORKER_ENABLED", true),
			PollInterval:  getEnvAsDuration("REMINDER_WORKER_POLL_INTERVAL", 30*time.Second),
			BatchSize:     getEnvAsInt("REMINDER_WORKER_BATCH_SIZE", 10),
		},
		Import: ImportConfig{
			ReceiptsSheet: getEnv("IMPORT_RECEIPTS_SHEET", "receipts"),
			ItemsSheet:    getEnv("IMPORT_ITEMS_SHEET", "receiptsWithItems"),
			MaxUploadMB:   getEnvAsInt("IMPORT_MAX_UPLOAD_MB", 16),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
