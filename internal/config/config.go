package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Mail     MailConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig selects the catalog/order storage backend.
// Backend "memory" boots with seed data and needs no infrastructure;
// "mysql" expects a reachable DSN.
type DatabaseConfig struct {
	Backend string
	DSN     string
}

// RedisConfig configures the session backend. Backend "memory" keeps
// carts in process; "redis" stores them under Addr.
type RedisConfig struct {
	Backend  string
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTLHours   int
}

// MailConfig mirrors the SMTP settings of the storefront. When Username or
// Password are empty the mailer runs in development mode: messages are
// logged instead of sent and dispatch reports success.
type MailConfig struct {
	Server      string
	Port        int
	UseTLS      bool
	Username    string
	Password    string
	Sender      string
	OrdersEmail string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			Backend: getEnv("DB_BACKEND", "memory"),
			DSN:     getEnv("DB_DSN", "stycly:stycly@tcp(localhost:3306)/stycly?parseTime=true"),
		},
		Redis: RedisConfig{
			Backend:  getEnv("SESSION_BACKEND", "memory"),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "stycly_session"),
			TTLHours:   getEnvAsInt("SESSION_TTL_HOURS", 72),
		},
		Mail: MailConfig{
			Server:      getEnv("MAIL_SERVER", "smtp.gmail.com"),
			Port:        getEnvAsInt("MAIL_PORT", 587),
			UseTLS:      getEnvAsBool("MAIL_USE_TLS", true),
			Username:    getEnv("MAIL_USERNAME", ""),
			Password:    getEnv("MAIL_PASSWORD", ""),
			Sender:      getEnv("MAIL_DEFAULT_SENDER", "noreply@stycly.com"),
			OrdersEmail: getEnv("ORDERS_EMAIL", "orders@stycly.com"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Backend {
	case "memory", "mysql":
	default:
		return fmt.Errorf("invalid DB_BACKEND: %s (must be memory or mysql)", c.Database.Backend)
	}

	switch c.Redis.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid SESSION_BACKEND: %s (must be memory or redis)", c.Redis.Backend)
	}

	if c.Database.Backend == "mysql" && c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required when DB_BACKEND is mysql")
	}

	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if c.Mail.OrdersEmail == "" {
		return fmt.Errorf("ORDERS_EMAIL is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
