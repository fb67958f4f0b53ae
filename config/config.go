package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	FatSecret FatSecretConfig
	Cache     CacheConfig
	Workers   WorkersConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FatSecretConfig holds FatSecret Platform API configuration
type FatSecretConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	TokenURL     string        `mapstructure:"token_url"`
	APIURL       string        `mapstructure:"api_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string `mapstructure:"type"` // "file" or "memory"
	Path string `mapstructure:"path"`
}

// WorkersConfig holds the lookup worker pool configuration
type WorkersConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// RateLimitConfig holds HTTP rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutrilookup/")

	// Environment variable settings
	v.SetEnvPrefix("NUTRILOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key is defaulted so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// FatSecret defaults
	v.SetDefault("fatsecret.client_id", "")
	v.SetDefault("fatsecret.client_secret", "")
	v.SetDefault("fatsecret.token_url", "https://oauth.fatsecret.com/connect/token")
	v.SetDefault("fatsecret.api_url", "https://platform.fatsecret.com/rest/server.api")
	v.SetDefault("fatsecret.timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.type", "file")
	v.SetDefault("cache.path", "food_cache_db.json")

	// Worker pool defaults
	v.SetDefault("workers.pool_size", 5)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "file" && config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'file' or 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "file" && config.Cache.Path == "" {
		return fmt.Errorf("cache path is required when cache type is 'file'")
	}

	if config.Workers.PoolSize < 1 {
		return fmt.Errorf("worker pool size must be at least 1, got: %d", config.Workers.PoolSize)
	}

	if config.FatSecret.Timeout <= 0 {
		return fmt.Errorf("FatSecret timeout must be positive, got: %s", config.FatSecret.Timeout)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP cannot be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	return nil
}
