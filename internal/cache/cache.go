package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cache stores answers per (document, question) so repeated questions skip the LLM.
type Cache interface {
	// GetAnswer retrieves a cached answer by key.
	// Returns nil if not found.
	GetAnswer(ctx context.Context, key string) (*Answer, error)

	// SetAnswer stores an answer with TTL
	SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error

	// InvalidateDocument removes all cached answers for a document
	InvalidateDocument(ctx context.Context, docID uuid.UUID) error

	// Close closes the cache connection
	Close() error
}

// Answer represents a cached /ask response.
type Answer struct {
	Answer     string    `json:"answer"`
	DocumentID uuid.UUID `json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerateKey builds a key scoped to docID. Questions are normalised for case and spacing.
func GenerateKey(docID uuid.UUID, question string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(question), " "))
	sum := sha256.Sum256([]byte(normalized))
	return docID.String() + ":" + hex.EncodeToString(sum[:16])
}
