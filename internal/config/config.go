package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront server
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Session  SessionConfig
	Cache    CacheConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
	SecureCookies   bool
}

// BackendConfig describes how to reach the remote REST API
type BackendConfig struct {
	URL        string
	Timeout    time.Duration
	Discovery  string // static or consul
	ConsulHost string
	Service    string
}

type SessionConfig struct {
	CustomerTokenTTL time.Duration
	AdminTokenTTL    time.Duration
	IdleTTL          time.Duration
}

// CacheConfig selects the local quantity cache driver
type CacheConfig struct {
	Driver      string // memory or redis
	RedisAddr   string
	RedisPrefix string
	TTL         time.Duration
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			SecureCookies:   getEnvAsBool("SECURE_COOKIES", false),
		},
		Backend: BackendConfig{
			URL:        getEnv("BACKEND_URL", "http://localhost:5555"),
			Timeout:    getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			Discovery:  strings.ToLower(getEnv("DISCOVERY", "static")),
			ConsulHost: getEnv("CONSUL_HOST", "localhost:8500"),
			Service:    getEnv("BACKEND_SERVICE", "food-api"),
		},
		Session: SessionConfig{
			CustomerTokenTTL: getEnvAsDuration("CUSTOMER_TOKEN_TTL", 24*time.Hour),
			AdminTokenTTL:    getEnvAsDuration("ADMIN_TOKEN_TTL", 24*time.Hour),
			IdleTTL:          getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		},
		Cache: CacheConfig{
			Driver:      strings.ToLower(getEnv("QTY_CACHE", "memory")),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPrefix: getEnv("REDIS_PREFIX", "storefront"),
			TTL:         getEnvAsDuration("QTY_CACHE_TTL", 24*time.Hour),
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

	switch c.Backend.Discovery {
	case "static":
		if c.Backend.URL == "" {
			return fmt.Errorf("BACKEND_URL is required with static discovery")
		}
	case "consul":
		if c.Backend.Service == "" {
			return fmt.Errorf("BACKEND_SERVICE is required with consul discovery")
		}
	default:
		return fmt.Errorf("invalid discovery: %s (must be static or consul)", c.Backend.Discovery)
	}

	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required with the redis cache")
		}
	default:
		return fmt.Errorf("invalid quantity cache: %s (must be memory or redis)", c.Cache.Driver)
	}

	if c.Session.CustomerTokenTTL <= 0 || c.Session.AdminTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
