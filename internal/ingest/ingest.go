// Package ingest turns uploaded documents into catalog books.
//
// A file is extracted into pages, the pages are split into chapters, metadata
// fills in whatever the uploader left blank, and the result is added to the
// catalog:
//
//	in := ingest.New(ingest.Config{Catalog: cat, State: store})
//	book, err := in.Ingest(ctx, admin, ingest.Upload{Path: "book.pdf"})
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/metcalfc/shelf/internal/cover"
	"github.com/metcalfc/shelf/internal/segment"
	"github.com/metcalfc/shelf/internal/state"
)

// UnknownAuthor is used when neither the upload nor the document names an author.
const UnknownAuthor = "Unknown Author"

var (
	// ErrForbidden is returned when a non-admin tries to add books.
	ErrForbidden = errors.New("only admins can add books")

	// ErrDuplicate is returned when the same file was already ingested.
	ErrDuplicate = errors.New("file already in catalog")
)

// Catalog is the subset of *catalog.Catalog the ingester writes to.
type Catalog interface {
	Add(b catalog.Book) (catalog.Book, error)
	Get(id string) (catalog.Book, error)
}

// Upload describes a file to ingest. Non-empty fields override what is
// found in the document.
type Upload struct {
	Path        string
	Title       string
	Author      string
	Description string
	CoverURL    string
	Tags        []string

	// Force ingests the file even if an identical one is already in the catalog.
	Force bool
}

// Draft is a book built from a file but not yet stored.
type Draft struct {
	Book catalog.Book

	// Strategy and Pattern record how the chapters were found.
	Strategy segment.Strategy
	Pattern  string

	// Pages is the number of pages with text.
	Pages int
}

// Ingester builds books from documents.
type Ingester struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Ingester with the given configuration.
func New(cfg Config) *Ingester {
	cfg.defaults()
	return &Ingester{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Prepare extracts and segments up.Path without touching the catalog.
// Extraction failures wrap reader.ErrProcessingFailed.
func (in *Ingester) Prepare(ctx context.Context, up Upload) (*Draft, error) {
	in.logger.Debug("extracting document", "path", up.Path)
	doc, err := in.cfg.Extractor.Extract(ctx, up.Path)
	if err != nil {
		in.logger.Error("extraction failed", "path", up.Path, "error", err)
		return nil, err
	}

	res := in.cfg.Segmenter.Segment(doc.Pages)
	in.logger.Debug("segmented document",
		"path", up.Path,
		"pages", len(doc.Pages),
		"chapters", len(res.Chapters),
		"strategy", res.Strategy,
		"pattern", res.Pattern,
	)

	title := firstNonBlank(up.Title, doc.Title, cover.TitleFromFilename(filepath.Base(up.Path)))
	author := firstNonBlank(up.Author, doc.Author, doc.Creator, UnknownAuthor)

	coverURL := strings.TrimSpace(up.CoverURL)
	if coverURL == "" {
		coverURL = in.cfg.Covers.Generate(title)
	}

	return &Draft{
		Book: catalog.Book{
			Title:       title,
			Author:      author,
			Description: strings.TrimSpace(up.Description),
			CoverURL:    coverURL,
			Content:     res.Chapters,
			Tags:        up.Tags,
		},
		Strategy: res.Strategy,
		Pattern:  res.Pattern,
		Pages:    len(doc.Pages),
	}, nil
}

// Ingest adds the document at up.Path to the catalog on behalf of user.
func (in *Ingester) Ingest(ctx context.Context, user *state.User, up Upload) (catalog.Book, error) {
	if user == nil || !user.IsAdmin {
		return catalog.Book{}, ErrForbidden
	}

	var hash string
	if in.cfg.State != nil {
		h, err := state.ComputeHash(up.Path)
		if err == nil {
			hash = h
			if id, ok := in.cfg.State.BookForFile(h); ok && !up.Force {
				if _, err := in.cfg.Catalog.Get(id); err == nil {
					return catalog.Book{}, fmt.Errorf("%w: %s", ErrDuplicate, id)
				}
			}
		}
	}

	d, err := in.Prepare(ctx, up)
	if err != nil {
		return catalog.Book{}, err
	}
	d.Book.UploadedBy = user.ID

	book, err := in.cfg.Catalog.Add(d.Book)
	if err != nil {
		return catalog.Book{}, fmt.Errorf("add %s: %w", filepath.Base(up.Path), err)
	}

	if hash != "" {
		if err := in.cfg.State.RememberFile(hash, book.ID); err != nil {
			in.logger.Warn("could not record file hash", "path", up.Path, "error", err)
		}
	}

	in.logger.Info("book added",
		"id", book.ID,
		"title", book.Title,
		"chapters", len(book.Content),
		"strategy", d.Strategy,
	)
	return book, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
