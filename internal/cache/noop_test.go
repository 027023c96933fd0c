package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestNoOpCache verifies that NoOpCache implements the Cache interface correctly
func TestNoOpCache(t *testing.T) {
	var c Cache = NewNoOpCache()
	ctx := context.Background()
	docID := uuid.New()
	key := GenerateKey(docID, "What is the refund window?")

	result, err := c.GetAnswer(ctx, key)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result (cache miss), got %v", result)
	}

	err = c.SetAnswer(ctx, key, &Answer{Answer: "14 days", DocumentID: docID}, time.Hour)
	if err != nil {
		t.Errorf("Expected no error on SetAnswer, got %v", err)
	}

	// Verify it still returns nil (nothing was actually cached)
	result, err = c.GetAnswer(ctx, key)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result (no-op cache doesn't store), got %v", result)
	}

	if err := c.InvalidateDocument(ctx, docID); err != nil {
		t.Errorf("Expected no error on InvalidateDocument, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Expected no error on Close, got %v", err)
	}
}
