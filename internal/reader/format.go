package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format defines a file format reader for extracting page text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(ctx context.Context, filename string) (*Document, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Lookup returns the registered format for filename's extension, or nil.
func Lookup(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return nil
}

// Default dispatches on file extension through the registry.
var Default Extractor = ExtractorFunc(Extract)

// Extract reads filename with its registered format, or as plain text when no
// format claims the extension. Every failure is reported as ErrProcessingFailed.
func Extract(ctx context.Context, filename string) (*Document, error) {
	var (
		doc *Document
		err error
	)
	if f := Lookup(filename); f != nil {
		doc, err = f.Extract(ctx, filename)
	} else {
		doc, err = extractPlain(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProcessingFailed, filepath.Base(filename), err)
	}
	if doc.TotalPages == 0 {
		doc.TotalPages = len(doc.Pages)
	}
	return doc, nil
}

// extractPlain splits a text file into pages on form feeds.
func extractPlain(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	raw := strings.Split(string(data), "\f")
	doc := &Document{TotalPages: len(raw)}
	for _, p := range raw {
		doc.Pages = appendPage(doc.Pages, p)
	}
	return doc, nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
