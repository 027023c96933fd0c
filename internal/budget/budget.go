// Package budget gates extracted text against the LLM context size.
package budget

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const defaultCharsPerToken = 4

// ErrTooLarge is returned when text exceeds the context budget.
var ErrTooLarge = errors.New("text exceeds context budget")

// Estimator approximates token counts from character count to avoid a tokenizer dependency.
type Estimator struct {
	CharsPerToken int
}

// Estimate returns the approximate token count of text, never less than 1.
func (e Estimator) Estimate(text string) int {
	cpt := e.CharsPerToken
	if cpt <= 0 {
		cpt = defaultCharsPerToken
	}
	return max(1, utf8.RuneCountInString(text)/cpt)
}

// Check estimates text and fails with ErrTooLarge when it is above maxTokens.
func (e Estimator) Check(text string, maxTokens int) (int, error) {
	tokens := e.Estimate(text)
	if tokens > maxTokens {
		return tokens, fmt.Errorf("%w: ~%d tokens, limit %d", ErrTooLarge, tokens, maxTokens)
	}
	return tokens, nil
}
