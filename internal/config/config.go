package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Scraper  ScraperConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int32
}

type CacheConfig struct {
	// Type is "redis" or "memory".
	Type       string
	RedisAddr  string
	RedisPass  string
	RedisDB    int
	TTLSeconds int
}

type ScraperConfig struct {
	TimeoutSeconds int
	MinDelayMillis int
	MaxDelayMillis int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "closetly"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Cache: CacheConfig{
			Type:       getEnv("CACHE_TYPE", "memory"),
			RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPass:  getEnv("REDIS_PASSWORD", ""),
			RedisDB:    getEnvInt("REDIS_DB", 0),
			TTLSeconds: getEnvInt("CACHE_TTL", 900),
		},
		Scraper: ScraperConfig{
			TimeoutSeconds: getEnvInt("SCRAPER_TIMEOUT", 30),
			MinDelayMillis: getEnvInt("SCRAPER_MIN_DELAY_MS", 500),
			MaxDelayMillis: getEnvInt("SCRAPER_MAX_DELAY_MS", 1500),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return fmt.Errorf("invalid cache type: %q", c.Cache.Type)
	}

	if c.Scraper.TimeoutSeconds <= 0 {
		return fmt.Errorf("scraper timeout must be positive")
	}

	if c.Scraper.MinDelayMillis < 0 || c.Scraper.MaxDelayMillis < c.Scraper.MinDelayMillis {
		return fmt.Errorf("invalid scraper delay range: %d-%d ms",
			c.Scraper.MinDelayMillis, c.Scraper.MaxDelayMillis)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
