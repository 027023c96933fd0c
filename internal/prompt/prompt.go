// Package prompt assembles grounded prompts and recognises the fallback answer.
package prompt

import (
	"strings"
	"unicode"
)

// Fallback is the exact reply the model is told to give when the document lacks the answer.
const Fallback = "The document does not contain that information."

// System constrains the model to the supplied document.
const System = "You are a helpful assistant that answers ONLY using the provided DOCUMENT. " +
	"If the DOCUMENT does not contain the answer, reply exactly: " +
	"'" + Fallback + "' Keep answers concise."

const instructions = "- Only answer using DOCUMENT.\n" +
	"- If unsure or not present, say it is not in the document."

// Build returns the user message carrying the document text and the question.
func Build(documentText, question string) string {
	var b strings.Builder
	b.Grow(len(documentText) + len(question) + len(instructions) + 48)
	b.WriteString("[DOCUMENT]\n")
	b.WriteString(documentText)
	b.WriteString("\n\n[QUESTION]\n")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\n[INSTRUCTIONS]\n")
	b.WriteString(instructions)
	return b.String()
}

// Normalize trims a model answer and replaces an empty one with Fallback.
func Normalize(answer string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Fallback
	}
	if IsFallback(answer) {
		return Fallback
	}
	return answer
}

var fallbackKey = squash(Fallback)

// IsFallback reports whether answer is the fallback reply, ignoring case, quotes and punctuation.
func IsFallback(answer string) bool {
	return squash(answer) == fallbackKey
}

func squash(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(b.String())
}
