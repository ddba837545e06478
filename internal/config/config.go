package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Upstream UpstreamConfig
	Redis    RedisConfig
	Server   ServerConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

type UpstreamConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	Enabled  bool
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CacheConfig struct {
	TTL       time.Duration
	MaxL1Size int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Cargar .env si existe
	if err := godotenv.Load(); err != nil {
		// No es crítico si no existe el archivo .env
	}

	config := &Config{
		Upstream: UpstreamConfig{
			BaseURL:    getEnv("INVENTORY_API_URL", "http://localhost:9000"),
			Timeout:    time.Duration(getEnvAsInt("INVENTORY_API_TIMEOUT_SECONDS", 10)) * time.Second,
			MaxRetries: getEnvAsInt("INVENTORY_API_MAX_RETRIES", 2),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Cache: CacheConfig{
			TTL:       time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
			MaxL1Size: getEnvAsInt("CACHE_MAX_L1_SIZE", 1000),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

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
