package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type enumerates published event kinds.
type Type string

const (
	TypeDocumentReplaced Type = "document.replaced"
)

// Event describes a change to the resident document.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	DocumentID uuid.UUID `json:"document_id"`
	PreviousID uuid.UUID `json:"previous_id,omitempty"`
	Filename   string    `json:"filename"`
	Tokens     int       `json:"tokens"`
	At         time.Time `json:"at"`
}

// Publisher fans document events out to interested listeners.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NoOp discards events. Used when EVENTS_PROVIDER=none.
type NoOp struct{}

func (NoOp) Publish(context.Context, Event) error {
	return nil
}

func (NoOp) Close() error {
	return nil
}
