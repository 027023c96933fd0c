package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const subjectPrefix = "documents."

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NewNATS constructs a thin NATS-based publisher.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  conn
}

// Subject returns the NATS subject for an event type, e.g. "documents.replaced".
func Subject(t Type) string {
	return subjectPrefix + strings.TrimPrefix(string(t), "document.")
}

func (p *natsPublisher) Publish(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ev.Type == "" {
		return errors.New("event type required")
	}
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.nc.Publish(Subject(ev.Type), body); err != nil {
		return err
	}
	p.log.Debug("event published", "id", ev.ID, "type", ev.Type, "document_id", ev.DocumentID)
	return nil
}

func (p *natsPublisher) Close() error {
	return p.nc.Drain()
}
