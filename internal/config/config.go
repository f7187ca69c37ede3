// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"strconv"

	"sheetforge/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// AI contains AI provider settings
	AI AIConfig `json:"ai"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// AIConfig contains AI provider settings. API keys are never stored in
// the file; they are read from the environment at provider construction.
type AIConfig struct {
	// Provider selects the backend: anthropic, openai, azure
	Provider string `json:"provider"`

	// AnthropicModel is the Anthropic model name
	AnthropicModel string `json:"anthropic_model"`

	// OpenAIModel is the OpenAI model name
	OpenAIModel string `json:"openai_model"`

	// AzureEndpoint is the Azure OpenAI resource endpoint
	AzureEndpoint string `json:"azure_endpoint,omitempty"`

	// AzureDeployment is the Azure OpenAI deployment name
	AzureDeployment string `json:"azure_deployment,omitempty"`

	// TimeoutSeconds bounds a single provider call
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr: ":8080",
		},
		AI: AIConfig{
			Provider:       envOr("SHEETFORGE_AI_PROVIDER", "anthropic"),
			AnthropicModel: envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
			OpenAIModel:    envOr("OPENAI_MODEL", "gpt-4o"),
			AzureEndpoint:  os.Getenv("AZURE_OPENAI_ENDPOINT"),
			AzureDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT"),
			TimeoutSeconds: envIntOr("SHEETFORGE_AI_TIMEOUT", 30),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
