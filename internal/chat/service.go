// Package chat ties extraction, the document slot and the LLM into the upload and ask flows.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pdf-chatbot/internal/budget"
	"pdf-chatbot/internal/cache"
	"pdf-chatbot/internal/document"
	"pdf-chatbot/internal/events"
	"pdf-chatbot/internal/extract"
	"pdf-chatbot/internal/llm"
	"pdf-chatbot/internal/prompt"
)

var (
	// ErrNotPDF is returned for uploads that are neither named nor typed as PDF.
	ErrNotPDF = errors.New("only pdf uploads are supported")
	// ErrEmptyQuestion is returned for blank questions.
	ErrEmptyQuestion = errors.New("question must be provided")
	// ErrUpstream wraps LLM failures.
	ErrUpstream = errors.New("answer generation failed")
)

// Options carries the limits applied to uploads and cached answers.
type Options struct {
	MaxContextTokens int
	CharsPerToken    int
	CacheTTL         time.Duration
}

// Service answers questions about the single resident document.
type Service struct {
	log       *slog.Logger
	docs      document.Store
	llm       llm.Client
	cache     cache.Cache
	events    events.Publisher
	estimator budget.Estimator
	maxTokens int
	cacheTTL  time.Duration
}

// NewService wires the collaborators. A nil cache or publisher is replaced by a no-op.
func NewService(log *slog.Logger, docs document.Store, client llm.Client, c cache.Cache, pub events.Publisher, opts Options) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if pub == nil {
		pub = events.NoOp{}
	}
	return &Service{
		log:       log,
		docs:      docs,
		llm:       client,
		cache:     c,
		events:    pub,
		estimator: budget.Estimator{CharsPerToken: opts.CharsPerToken},
		maxTokens: opts.MaxContextTokens,
		cacheTTL:  opts.CacheTTL,
	}
}

// Upload extracts the PDF text and makes it the resident document.
// Nothing is replaced when extraction or the budget check fails.
func (s *Service) Upload(ctx context.Context, filename, contentType string, data []byte) (document.Document, error) {
	if !extract.IsPDF(filename, contentType) {
		return document.Document{}, ErrNotPDF
	}

	text, err := extract.Text(ctx, data)
	if err != nil {
		return document.Document{}, fmt.Errorf("extract %q: %w", filename, err)
	}

	tokens, err := s.estimator.Check(text, s.maxTokens)
	if err != nil {
		return document.Document{}, err
	}

	doc := document.New(filename, text, tokens)
	prev, err := s.docs.Replace(ctx, doc)
	if err != nil {
		return document.Document{}, fmt.Errorf("replace document: %w", err)
	}

	log := s.log.With("document_id", doc.ID, "filename", filename)
	if !prev.IsZero() {
		if err := s.cache.InvalidateDocument(ctx, prev.ID); err != nil {
			log.Warn("failed to invalidate cached answers", "previous_id", prev.ID, "err", err)
		}
	}
	if err := s.events.Publish(ctx, events.Event{
		Type:       events.TypeDocumentReplaced,
		DocumentID: doc.ID,
		PreviousID: prev.ID,
		Filename:   filename,
		Tokens:     tokens,
		At:         doc.UploadedAt,
	}); err != nil {
		log.Warn("failed to publish document event", "err", err)
	}

	log.Info("document processed", "tokens", tokens, "chars", len(text))
	return doc, nil
}

// Ask answers question using only the resident document.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	doc, err := s.docs.Current(ctx)
	if err != nil {
		return "", err
	}

	key := cache.GenerateKey(doc.ID, question)
	if cached, err := s.cache.GetAnswer(ctx, key); err != nil {
		s.log.Warn("cache lookup failed", "err", err)
	} else if cached != nil {
		s.log.Debug("cache hit", "document_id", doc.ID)
		return cached.Answer, nil
	}

	raw, err := s.llm.Complete(ctx, prompt.System, prompt.Build(doc.Text, question))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	answer := prompt.Normalize(raw)

	if !prompt.IsFallback(answer) {
		if err := s.cache.SetAnswer(ctx, key, &cache.Answer{
			Answer:     answer,
			DocumentID: doc.ID,
			CreatedAt:  time.Now().UTC(),
		}, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache answer", "err", err)
		}
	}
	return answer, nil
}
