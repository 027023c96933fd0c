package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-chatbot/internal/cache"
	"pdf-chatbot/internal/config"
	"pdf-chatbot/internal/events"
	"pdf-chatbot/internal/llm"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildLLM(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
		check   func(*testing.T, llm.Client)
	}{
		{
			name: "groq",
			cfg:  config.Config{LLMProvider: "groq", GroqKey: "k", MaxContextTokens: 8000},
			check: func(t *testing.T, c llm.Client) {
				assert.IsType(t, &llm.OpenAIClient{}, c)
			},
		},
		{name: "groq without key", cfg: config.Config{LLMProvider: "groq"}, wantErr: true},
		{
			name: "openai",
			cfg:  config.Config{LLMProvider: "openai", OpenAIKey: "k"},
			check: func(t *testing.T, c llm.Client) {
				assert.IsType(t, &llm.OpenAIClient{}, c)
			},
		},
		{name: "openai without key", cfg: config.Config{LLMProvider: "openai"}, wantErr: true},
		{
			name: "stub",
			cfg:  config.Config{LLMProvider: "stub"},
			check: func(t *testing.T, c llm.Client) {
				assert.Equal(t, llm.StubClient{}, c)
			},
		},
		{name: "unknown provider", cfg: config.Config{LLMProvider: "bard"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := buildLLM(tt.cfg, discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLLMOptionsOverrides(t *testing.T) {
	cfg := config.Config{
		MaxContextTokens: 500,
		LLMTimeout:       3 * time.Second,
		LLMBaseURL:       "http://localhost:9999/v1/",
		LLMModel:         "custom-model",
	}
	opts := llmOptions(cfg, llm.GroqBaseURL, llm.DefaultGroqModel)
	assert.Equal(t, "http://localhost:9999/v1/", opts.BaseURL)
	assert.Equal(t, "custom-model", string(opts.Model))
	assert.Equal(t, 500, opts.MaxTokens)
	assert.Equal(t, 3*time.Second, opts.Timeout)

	opts = llmOptions(config.Config{}, llm.GroqBaseURL, llm.DefaultGroqModel)
	assert.Equal(t, llm.GroqBaseURL, opts.BaseURL)
	assert.Equal(t, llm.DefaultGroqModel, string(opts.Model))
}

func TestBuildCacheAndEvents(t *testing.T) {
	c, err := buildCache(config.Config{CacheProvider: "none"}, discard)
	require.NoError(t, err)
	assert.IsType(t, &cache.NoOpCache{}, c)

	_, err = buildCache(config.Config{CacheProvider: "redis"}, discard)
	assert.Error(t, err)
	_, err = buildCache(config.Config{CacheProvider: "memcached"}, discard)
	assert.Error(t, err)

	p, err := buildEvents(config.Config{EventsProvider: "none"}, discard)
	require.NoError(t, err)
	assert.Equal(t, events.NoOp{}, p)

	_, err = buildEvents(config.Config{EventsProvider: "nats"}, discard)
	assert.Error(t, err)
	_, err = buildEvents(config.Config{EventsProvider: "kafka"}, discard)
	assert.Error(t, err)
}

func TestAssemble(t *testing.T) {
	cfg := config.Config{MaxContextTokens: 100, CharsPerToken: 4, CacheTTL: 60}
	deps := Assemble(cfg, discard, llm.StubClient{}, cache.NewNoOpCache(), events.NoOp{})

	require.NotNil(t, deps.Chat)
	require.NotNil(t, deps.Docs)
	assert.NoError(t, deps.Close())
}
