package llm

import "context"

// Client is a minimal chat-completion interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
