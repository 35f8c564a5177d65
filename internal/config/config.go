package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Redis backs the unread-count cache
	Redis RedisConfig `json:"redis"`

	Auth AuthConfig `json:"auth"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver       string `json:"driver"` // mysql, postgres, sqlite
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	SSLMode      string `json:"ssl_mode"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`

	// Overrides the DSN built from the values above
	URL string `json:"-"`
}

type RedisConfig struct {
	Enabled   bool   `json:"enabled"`
	URL       string `json:"url"`
	UnreadTTL int    `json:"unread_ttl"` // seconds
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	TokenTTL  int    `json:"token_ttl"` // hours
	Issuer    string `json:"issuer"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level"` // debug, info, warn, error, silent
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnvOrDefault("DB_DRIVER", "mysql")),
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "gomentor"),
			Password:     getEnvOrDefault("DB_PASSWORD", "gomentor123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "gomentor"),
			SSLMode:      getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			URL:          os.Getenv("DB_URL"),
		},
		Redis: RedisConfig{
			Enabled:   getEnvOrDefault("REDIS_ENABLED", "false") == "true",
			URL:       getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
			UnreadTTL: getEnvInt("REDIS_UNREAD_TTL", 300),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", "change-me"),
			TokenTTL:  getEnvInt("JWT_TTL_HOURS", 24),
			Issuer:    getEnvOrDefault("JWT_ISSUER", "gomentor"),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		},
	}
}

// DSN returns the connection string for the configured driver.
func (cfg *Config) DSN() string {
	if cfg.Database.URL != "" {
		return cfg.Database.URL
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}

	switch cfg.Database.Driver {
	case "postgres":
		port := cfg.Database.Port
		if port == "" || port == "3306" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			port,
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.DatabaseName,
			cfg.Database.SSLMode,
		)
	case "sqlite":
		if cfg.Database.DatabaseName == "" {
			return ":memory:"
		}
		return cfg.Database.DatabaseName
	default:
		if cfg.Database.Port == "" {
			cfg.Database.Port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DatabaseName,
		)
	}
}

func (cfg *Config) UnreadTTL() time.Duration {
	return time.Duration(cfg.Redis.UnreadTTL) * time.Second
}

func (cfg *Config) TokenTTL() time.Duration {
	return time.Duration(cfg.Auth.TokenTTL) * time.Hour
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
