package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmpty is returned when no document has been uploaded yet.
var ErrEmpty = errors.New("no document uploaded")

// Document is the extracted text of the most recent upload.
type Document struct {
	ID         uuid.UUID
	Filename   string
	Text       string
	Tokens     int
	UploadedAt time.Time
}

// IsZero reports whether d is the empty document.
func (d Document) IsZero() bool {
	return d.ID == uuid.Nil
}

// Store holds at most one document; each Replace discards the previous one.
type Store interface {
	Current(ctx context.Context) (Document, error)
	Replace(ctx context.Context, doc Document) (Document, error)
}

// New assigns an ID and upload time to extracted text.
func New(filename, text string, tokens int) Document {
	return Document{
		ID:         uuid.New(),
		Filename:   filename,
		Text:       text,
		Tokens:     tokens,
		UploadedAt: time.Now().UTC(),
	}
}
