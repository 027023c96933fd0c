package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Upload limits
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes
	MaxContextTokens int   `env:"MAX_CONTEXT_TOKENS" envDefault:"8000"`
	CharsPerToken    int   `env:"CHARS_PER_TOKEN" envDefault:"4"`

	// LLM
	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"groq"` // "groq", "openai" or "stub" (offline)
	GroqKey     string        `env:"GROQ_API_KEY"`
	OpenAIKey   string        `env:"OPENAI_API_KEY"`
	LLMBaseURL  string        `env:"LLM_BASE_URL"`
	LLMModel    string        `env:"LLM_MODEL"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// Answer cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"none"` // "none" or "redis"
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"3600"` // seconds

	// Document events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"none"` // "none" or "nats"
	NATSURL        string `env:"NATS_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// Validate reports settings that would make the service misbehave.
func (c Config) Validate() error {
	var errs []error
	if c.MaxContextTokens <= 0 {
		errs = append(errs, errors.New("MAX_CONTEXT_TOKENS must be positive"))
	}
	if c.CharsPerToken <= 0 {
		errs = append(errs, errors.New("CHARS_PER_TOKEN must be positive"))
	}
	if c.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_SIZE must be positive"))
	}
	return errors.Join(errs...)
}
