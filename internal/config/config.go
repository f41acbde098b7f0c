package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	DiscoveryAPIURL  string
	DiscoveryTimeout time.Duration
	CacheTTL         time.Duration
	MaxEventResults  int
	MaxAttendees     int
	Environment      string
	LogLevel         string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnvWithDefault("PORT", "8080"),
		DiscoveryAPIURL:  os.Getenv("DISCOVERY_API_URL"),
		DiscoveryTimeout: time.Duration(getEnvInt("DISCOVERY_TIMEOUT_SECONDS", 15)) * time.Second,
		CacheTTL:         time.Duration(getEnvInt("CACHE_TTL_MINUTES", 30)) * time.Minute,
		MaxEventResults:  getEnvInt("MAX_EVENT_RESULTS", 20),
		MaxAttendees:     getEnvInt("MAX_ATTENDEE_RESULTS", 30),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.DiscoveryAPIURL == "" {
		return nil, fmt.Errorf("DISCOVERY_API_URL is required")
	}
	if cfg.DiscoveryTimeout <= 0 {
		return nil, fmt.Errorf("DISCOVERY_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
