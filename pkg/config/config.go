package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Env            string
	APIBaseURL     string
	MediaBaseURL   string
	RequestTimeout time.Duration
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.WithField("prefix", "config").Debug("no .env file found, assuming environment variables are set")
	}

	return &Config{
		Env:            getEnv("ENV", "development"),
		APIBaseURL:     getEnv("API_URL", "http://localhost:3005/api/feedback"),
		MediaBaseURL:   getEnv("MEDIA_URL", "http://localhost:3005"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		log.WithField("prefix", "config").Warnf("invalid %s value %q, using default", key, value)
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
