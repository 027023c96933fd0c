package document

import (
	"context"
	"errors"
	"sync"
)

// Memory is an in-process Store guarded by a RWMutex. Concurrent uploads are last-writer-wins.
type Memory struct {
	mu  sync.RWMutex
	doc Document
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Current(_ context.Context) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc.IsZero() || m.doc.Text == "" {
		return Document{}, ErrEmpty
	}
	return m.doc, nil
}

// Replace swaps in doc and returns the document it displaced (zero if none).
func (m *Memory) Replace(_ context.Context, doc Document) (Document, error) {
	if doc.IsZero() {
		return Document{}, errors.New("document id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.doc
	m.doc = doc
	return prev, nil
}
