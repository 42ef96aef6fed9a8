package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AxiomAPIBaseURL string
	OpenAIKey       string
	Port            string
	LivePort        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	S3Region        string
	S3Bucket        string
	AllowedOrigins  []string
	SessionTTLHours int
}

func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		AxiomAPIBaseURL: getEnv("AXIOM_API_BASE_URL", ""),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		Port:            getEnv("PORT", "8080"),
		LivePort:        getEnv("LIVE_PORT", "8081"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", "axiom-console-exports"),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", "http://localhost:3000"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
	}

	if cfg.AxiomAPIBaseURL == "" {
		log.Fatal("AXIOM_API_BASE_URL environment variable is required")
	}

	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
