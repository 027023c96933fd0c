// Package extract pulls plain text out of uploaded PDF documents.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

const pageSeparator = "\n\n"

var (
	// ErrUnreadable is returned when the bytes cannot be parsed as a PDF.
	ErrUnreadable = errors.New("extract: unreadable pdf")
	// ErrNoText is returned when a PDF parses but carries no extractable text.
	ErrNoText = errors.New("extract: no text in pdf")
)

var magic = []byte("%PDF-")

// IsPDF reports whether an upload claims to be a PDF, by extension or content type.
func IsPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "application/pdf"
}

// HasMagic reports whether data starts with the PDF header.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

// Text extracts the text of every page, joined by a blank line and trimmed.
// Pages that fail to decode are skipped.
func Text(ctx context.Context, data []byte) (text string, err error) {
	if !HasMagic(data) {
		return "", fmt.Errorf("%w: missing %%PDF header", ErrUnreadable)
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadable, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(pageNum)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, content)
	}

	text = strings.TrimSpace(strings.Join(pages, pageSeparator))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
