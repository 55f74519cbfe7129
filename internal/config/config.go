package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environmentally dependent settings for the ContentSage API.
type Config struct {
	HTTPAddr    string   `env:"CS_HTTP_ADDR" envDefault:":8080"`
	LogLevel    string   `env:"CS_LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"CS_LOG_FORMAT" envDefault:"json"`
	CORSOrigins []string `env:"CS_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Remote backends. An empty key leaves the backend registered but unavailable.
	GeminiAPIKey  string `env:"CS_GEMINI_API_KEY"`
	GeminiModel   string `env:"CS_GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	OpenAIAPIKey  string `env:"CS_OPENAI_API_KEY"`
	OpenAIModel   string `env:"CS_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"CS_OPENAI_BASE_URL"`

	// Local backends served by Ollama.
	OllamaHost          string `env:"CS_OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaPullOnLoad    bool   `env:"CS_OLLAMA_PULL_ON_LOAD" envDefault:"false"`
	LocalMaxPromptChars int    `env:"CS_LOCAL_MAX_PROMPT_CHARS" envDefault:"2048"`

	DefaultBackend    string `env:"CS_DEFAULT_BACKEND" envDefault:"gemini"`
	BackendTimeoutSec int    `env:"CS_BACKEND_TIMEOUT_SEC" envDefault:"30"`

	// Loading a local model may include a pull when CS_OLLAMA_PULL_ON_LOAD is set.
	// Zero means CS_BACKEND_TIMEOUT_SEC.
	ModelLoadTimeoutSec int `env:"CS_MODEL_LOAD_TIMEOUT_SEC" envDefault:"300"`

	BreakerThreshold   int `env:"CS_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldownSec int `env:"CS_BREAKER_COOLDOWN_SEC" envDefault:"30"`

	DatabasePath   string `env:"CS_DATABASE_PATH" envDefault:"contentsage.db"`
	HistoryEnabled bool   `env:"CS_HISTORY_ENABLED" envDefault:"true"`
}

// BackendTimeout is the caller-side deadline applied to every backend call.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSec) * time.Second
}

// ModelLoadTimeout bounds loading a local model, pull included.
func (c *Config) ModelLoadTimeout() time.Duration {
	if c.ModelLoadTimeoutSec == 0 {
		return c.BackendTimeout()
	}
	return time.Duration(c.ModelLoadTimeoutSec) * time.Second
}

// BreakerCooldown is how long an open circuit rejects calls before probing again.
func (c *Config) BreakerCooldown() time.Duration {
	return time.Duration(c.BreakerCooldownSec) * time.Second
}

// Validate ensures that all required configuration is present and valid.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("CS_HTTP_ADDR is required")
	}
	if c.DefaultBackend == "" {
		return fmt.Errorf("CS_DEFAULT_BACKEND is required")
	}
	if c.BackendTimeoutSec <= 0 {
		return fmt.Errorf("CS_BACKEND_TIMEOUT_SEC must be positive")
	}
	if c.ModelLoadTimeoutSec < 0 {
		return fmt.Errorf("CS_MODEL_LOAD_TIMEOUT_SEC cannot be negative")
	}
	if c.BreakerThreshold < 1 {
		return fmt.Errorf("CS_BREAKER_THRESHOLD must be at least 1")
	}
	if c.BreakerCooldownSec < 0 {
		return fmt.Errorf("CS_BREAKER_COOLDOWN_SEC cannot be negative")
	}
	if c.LocalMaxPromptChars < 64 {
		return fmt.Errorf("CS_LOCAL_MAX_PROMPT_CHARS must be at least 64")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("CS_LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.HistoryEnabled && c.DatabasePath == "" {
		return fmt.Errorf("CS_DATABASE_PATH is required when CS_HISTORY_ENABLED is true")
	}
	return nil
}

// Load reads settings from the environment (and an optional .env file) with defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
