package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"pdf-chatbot/internal/cache"
	"pdf-chatbot/internal/chat"
	"pdf-chatbot/internal/config"
	"pdf-chatbot/internal/document"
	"pdf-chatbot/internal/events"
	"pdf-chatbot/internal/llm"
	"pdf-chatbot/internal/logger"
)

// Deps bundles common runtime dependencies for the server.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Docs   document.Store
	LLM    llm.Client
	Cache  cache.Cache
	Events events.Publisher
	Chat   *chat.Service
}

// Build loads .env (if present), config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return Deps{}, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	c, err := buildCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize cache: %w", err)
	}
	pub, err := buildEvents(cfg, log)
	if err != nil {
		_ = c.Close()
		return Deps{}, fmt.Errorf("failed to initialize events: %w", err)
	}
	return Assemble(cfg, log, llmClient, c, pub), nil
}

// Assemble wires the document slot and chat service around already-built clients.
func Assemble(cfg config.Config, log *slog.Logger, client llm.Client, c cache.Cache, pub events.Publisher) Deps {
	docs := document.NewMemory()
	svc := chat.NewService(log, docs, client, c, pub, chat.Options{
		MaxContextTokens: cfg.MaxContextTokens,
		CharsPerToken:    cfg.CharsPerToken,
		CacheTTL:         time.Duration(cfg.CacheTTL) * time.Second,
	})
	return Deps{
		Config: cfg,
		Log:    log,
		Docs:   docs,
		LLM:    client,
		Cache:  c,
		Events: pub,
		Chat:   svc,
	}
}

// Close releases connections held by the cache and event publisher.
func (d Deps) Close() error {
	var errs []error
	if d.Events != nil {
		errs = append(errs, d.Events.Close())
	}
	if d.Cache != nil {
		errs = append(errs, d.Cache.Close())
	}
	return errors.Join(errs...)
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "groq":
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=groq")
		}
		opts := llmOptions(cfg, llm.GroqBaseURL, llm.DefaultGroqModel)
		client, err := llm.NewOpenAIClient(cfg.GroqKey, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Groq client: %w", err)
		}
		log.Info("using Groq LLM client", "model", opts.Model)
		return client, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		opts := llmOptions(cfg, "", openai.ChatModelGPT4oMini)
		client, err := llm.NewOpenAIClient(cfg.OpenAIKey, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI LLM client", "model", opts.Model)
		return client, nil
	case "stub":
		log.Warn("using stub LLM client; every answer is the fallback")
		return llm.StubClient{}, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: groq, openai, stub)", cfg.LLMProvider)
	}
}

func llmOptions(cfg config.Config, baseURL string, model openai.ChatModel) llm.Options {
	opts := llm.Options{
		BaseURL:   baseURL,
		Model:     model,
		MaxTokens: cfg.MaxContextTokens,
		Timeout:   cfg.LLMTimeout,
	}
	if cfg.LLMBaseURL != "" {
		opts.BaseURL = cfg.LLMBaseURL
	}
	if cfg.LLMModel != "" {
		opts.Model = openai.ChatModel(cfg.LLMModel)
	}
	return opts
}

func buildCache(cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	switch cfg.CacheProvider {
	case "", "none":
		return cache.NewNoOpCache(), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when CACHE_PROVIDER=redis")
		}
		c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		log.Info("using Redis answer cache", "addr", cfg.RedisAddr, "ttl_seconds", cfg.CacheTTL)
		return c, nil
	default:
		return nil, fmt.Errorf("invalid CACHE_PROVIDER: %s (valid options: none, redis)", cfg.CacheProvider)
	}
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "", "none":
		return events.NoOp{}, nil
	case "nats":
		if cfg.NATSURL == "" {
			return nil, fmt.Errorf("NATS_URL is required when EVENTS_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("pdf-chatbot"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS document events")
		return events.NewNATS(log, nc), nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: none, nats)", cfg.EventsProvider)
	}
}
