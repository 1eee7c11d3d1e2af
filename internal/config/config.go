package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prodyscan/ProdyScan/internal/cache"
)

type Config struct {
	Server  ServerConfig
	Fetcher FetcherConfig
	Cache   CacheConfig
	Market  MarketConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type FetcherConfig struct {
	Timeout         time.Duration
	RedirectTimeout time.Duration
	DelayMin        time.Duration
	DelayMax        time.Duration
}

type CacheConfig struct {
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type MarketConfig struct {
	Domain string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Fetcher: FetcherConfig{
			Timeout:         getDurationOrDefault("FETCHER_TIMEOUT", 12*time.Second),
			RedirectTimeout: getDurationOrDefault("FETCHER_REDIRECT_TIMEOUT", 10*time.Second),
			DelayMin:        getDurationOrDefault("FETCHER_DELAY_MIN", 0),
			DelayMax:        getDurationOrDefault("FETCHER_DELAY_MAX", 0),
		},
		Cache: CacheConfig{
			TTL:           getDurationOrDefault("CACHE_TTL", cache.DefaultTTL),
			RedisAddr:     getEnvOrDefault("CACHE_REDIS_ADDR", ""),
			RedisPassword: getEnvOrDefault("CACHE_REDIS_PASSWORD", ""),
			RedisDB:       getIntOrDefault("CACHE_REDIS_DB", 0),
		},
		Market: MarketConfig{
			Domain: getEnvOrDefault("MARKET_DOMAIN", "alibaba.com"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.Fetcher.DelayMin > c.Fetcher.DelayMax {
		return fmt.Errorf("FETCHER_DELAY_MIN cannot be greater than FETCHER_DELAY_MAX")
	}

	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("FETCHER_TIMEOUT must be positive")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
