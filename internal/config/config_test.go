package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"MaxUploadSize", cfg.MaxUploadSize, int64(10485760)},
		{"MaxContextTokens", cfg.MaxContextTokens, 8000},
		{"CharsPerToken", cfg.CharsPerToken, 4},
		{"LLMProvider", cfg.LLMProvider, "groq"},
		{"LLMModel", cfg.LLMModel, ""},
		{"LLMTimeout", cfg.LLMTimeout, 30 * time.Second},
		{"CacheProvider", cfg.CacheProvider, "none"},
		{"CacheTTL", cfg.CacheTTL, 3600},
		{"EventsProvider", cfg.EventsProvider, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_CONTEXT_TOKENS", "120")
	t.Setenv("LLM_PROVIDER", "stub")
	t.Setenv("LLM_TIMEOUT", "5s")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.MaxContextTokens != 120 {
		t.Errorf("expected max context tokens 120, got %d", cfg.MaxContextTokens)
	}
	if cfg.LLMProvider != "stub" {
		t.Errorf("expected LLM provider 'stub', got %s", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("expected LLM timeout 5s, got %v", cfg.LLMTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{MaxContextTokens: 10, CharsPerToken: 4, MaxUploadSize: 1}, false},
		{"zero context tokens", Config{MaxContextTokens: 0, CharsPerToken: 4, MaxUploadSize: 1}, true},
		{"negative chars per token", Config{MaxContextTokens: 10, CharsPerToken: -1, MaxUploadSize: 1}, true},
		{"zero upload size", Config{MaxContextTokens: 10, CharsPerToken: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
