package reader

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrProcessingFailed is returned for any document that could not be read.
// The underlying cause is wrapped alongside it.
var ErrProcessingFailed = errors.New("document processing failed")

// Document is the text extracted from a source file, one entry per page.
type Document struct {
	Title      string
	Author     string
	Creator    string
	Pages      []string
	TotalPages int
	Metadata   map[string]string
}

// Extractor turns a document file into ordered page text.
type Extractor interface {
	Extract(ctx context.Context, filename string) (*Document, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, filename string) (*Document, error)

func (f ExtractorFunc) Extract(ctx context.Context, filename string) (*Document, error) {
	return f(ctx, filename)
}

// normalize NFC-normalizes and trims extracted text.
func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// appendPage adds text to pages unless it is blank.
func appendPage(pages []string, text string) []string {
	if text = normalize(text); text != "" {
		pages = append(pages, text)
	}
	return pages
}
