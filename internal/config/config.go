package config

import (
	"os"
	"strconv"
	"time"

	"csvalign/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	AI     AIConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AIConfig holds completion-service settings. API keys are optional at load
// time: a key may instead arrive per-request from the UI, and a missing key is
// only an error when a comparison is actually started.
type AIConfig struct {
	DefaultProvider string
	DefaultModel    string
	MaxTokens       int
	Timeout         time.Duration
	APIKeys         map[string]string // provider id -> key from environment
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		AI: AIConfig{
			DefaultProvider: getEnvOrDefault("DEFAULT_PROVIDER", "openai"),
			DefaultModel:    getEnvOrDefault("DEFAULT_MODEL", ""),
			MaxTokens:       getEnvIntOrDefault("MAX_TOKENS", 4096),
			Timeout:         getEnvDurationOrDefault("COMPLETION_TIMEOUT", 180*time.Second),
			APIKeys: map[string]string{
				"openai":    os.Getenv("OPENAI_API_KEY"),
				"anthropic": os.Getenv("ANTHROPIC_API_KEY"),
				"gemini":    os.Getenv("GEMINI_API_KEY"),
				"deepseek":  os.Getenv("DEEPSEEK_API_KEY"),
			},
		},
	}

	if config.AI.MaxTokens <= 0 {
		return nil, errors.ConfigInvalid("MAX_TOKENS must be positive")
	}
	if config.AI.Timeout <= 0 {
		return nil, errors.ConfigInvalid("COMPLETION_TIMEOUT must be positive")
	}
	return config, nil
}

// KeyFor returns the environment-supplied API key for a provider, if any.
func (c AIConfig) KeyFor(provider string) string {
	return c.APIKeys[provider]
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
