package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	Env              string
	PostgresConnStr  string
	MongoURI         string
	MongoDatabase    string
	RedisAddr        string
	RedisPassword    string
	SchedulerToken   string
	SessionTTL       time.Duration
	PostCacheTTL     time.Duration
	PopularThreshold int
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PostgresConnStr:  getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "wayra"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SchedulerToken:   getEnv("SCHEDULER_TOKEN", ""),
		SessionTTL:       time.Duration(getEnvInt("SESSION_TTL_SECONDS", 36000)) * time.Second,
		PostCacheTTL:     time.Duration(getEnvInt("POST_CACHE_TTL_SECONDS", 86400)) * time.Second,
		PopularThreshold: getEnvInt("POPULAR_THRESHOLD", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
