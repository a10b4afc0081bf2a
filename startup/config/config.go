package config

import "os"

type Config struct {
	Port          string
	GymDBHost     string
	GymDBPort     string
	JaegerAddress string
	LogFilePath   string
}

func NewConfig() *Config {
	return &Config{
		Port:          envOr("GYM_SERVICE_PORT", "8000"),
		GymDBHost:     envOr("GYM_DB_HOST", "localhost"),
		GymDBPort:     envOr("GYM_DB_PORT", "27017"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
		LogFilePath:   os.Getenv("GYM_SERVICE_LOG_PATH"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
