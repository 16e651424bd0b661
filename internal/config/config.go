package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	// Text-to-image provider.
	GenerationAPIURL string
	GenerationAPIKey string

	// Media transformation provider (Cloudinary-compatible delivery URLs).
	MediaCloudName string
	MediaBaseURL   string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/imagify?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		GenerationAPIURL: getEnv("GENERATION_API_URL", "https://clipdrop-api.co/text-to-image/v1"),
		GenerationAPIKey: os.Getenv("GENERATION_API_KEY"),
		MediaCloudName:   getEnv("MEDIA_CLOUD_NAME", "demo"),
		MediaBaseURL:     getEnv("MEDIA_BASE_URL", "https://res.cloudinary.com"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
