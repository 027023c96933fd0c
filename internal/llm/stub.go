package llm

import (
	"context"

	"pdf-chatbot/internal/prompt"
)

// StubClient answers every question with the fallback reply. Used with LLM_PROVIDER=stub.
type StubClient struct{}

func (StubClient) Complete(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return prompt.Fallback, nil
}
