// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Seed        SeedConfig
	Retail      RetailConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	ProductTTL int // in seconds
}

type SeedConfig struct {
	Products int
	Users    int
	Orders   int
}

type RetailConfig struct {
	DataPath    string
	FillMissing bool
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			ProductTTL: getEnvAsInt("PRODUCT_CACHE_TTL", 60),
		},
		Seed: SeedConfig{
			Products: getEnvAsInt("SEED_PRODUCT_COUNT", 1000),
			Users:    getEnvAsInt("SEED_USER_COUNT", 100),
			Orders:   getEnvAsInt("SEED_ORDER_COUNT", 500),
		},
		Retail: RetailConfig{
			DataPath:    getEnv("RETAIL_DATA_PATH", "data.csv"),
			FillMissing: getEnvAsBool("RETAIL_FILL_MISSING", true),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Cache.ProductTTL <= 0 {
		return fmt.Errorf("product cache TTL must be positive")
	}
	return nil
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
