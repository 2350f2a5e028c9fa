package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/metcalfc/shelf/internal/reader"
	"github.com/metcalfc/shelf/internal/state"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func chapterPages(n int) []string {
	var pages []string
	for i := 1; i <= n; i++ {
		pages = append(pages, fmt.Sprintf("Chapter %d\n%s", i, strings.Repeat("Words fill the chapter. ", 10)))
	}
	return pages
}

func fixedDoc(doc *reader.Document) reader.Extractor {
	return reader.ExtractorFunc(func(ctx context.Context, filename string) (*reader.Document, error) {
		return doc, nil
	})
}

type fixture struct {
	cat   *catalog.Catalog
	store *state.StateStore
	admin *state.User
	file  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cat, err := catalog.Open(dir)
	if err != nil {
		t.Fatalf("catalog.Open failed: %v", err)
	}
	store, err := state.NewStateStore(dir, "admin@universe.com")
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}
	admin, err := store.Register("admin", "admin@universe.com", "pw")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	file := filepath.Join(dir, "the_long-road.pdf")
	os.WriteFile(file, []byte("%PDF-1.4 stand-in"), 0644)
	return &fixture{cat: cat, store: store, admin: admin, file: file}
}

func (f *fixture) ingester(ex reader.Extractor) *Ingester {
	return New(Config{Extractor: ex, Catalog: f.cat, State: f.store, Logger: quiet})
}

func TestIngestUsesMetadata(t *testing.T) {
	f := newFixture(t)
	in := f.ingester(fixedDoc(&reader.Document{
		Title:  " Meditations ",
		Author: "Marcus Aurelius",
		Pages:  chapterPages(3),
	}))

	book, err := in.Ingest(context.Background(), f.admin, Upload{Path: f.file, Tags: []string{"stoic", " "}})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if book.Title != "Meditations" || book.Author != "Marcus Aurelius" {
		t.Errorf("got %q by %q", book.Title, book.Author)
	}
	if len(book.Content) != 3 {
		t.Errorf("got %d chapters, want 3", len(book.Content))
	}
	if !strings.HasPrefix(book.Content[0], "Chapter 1") {
		t.Errorf("chapter does not start with its heading: %q", book.Content[0][:20])
	}
	if !strings.HasPrefix(book.CoverURL, "data:image/png;base64,") {
		t.Errorf("expected generated cover, got %q", book.CoverURL[:30])
	}
	if len(book.Tags) != 1 {
		t.Errorf("blank tag kept: %v", book.Tags)
	}
	if book.UploadedBy != f.admin.ID {
		t.Errorf("UploadedBy = %q", book.UploadedBy)
	}
	if _, err := f.cat.Get(book.ID); err != nil {
		t.Errorf("book not stored: %v", err)
	}
}

func TestIngestFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		doc        reader.Document
		up         Upload
		wantTitle  string
		wantAuthor string
	}{
		{
			name:       "filename and unknown author",
			doc:        reader.Document{Pages: chapterPages(2)},
			wantTitle:  "the long road",
			wantAuthor: UnknownAuthor,
		},
		{
			name:       "creator when author missing",
			doc:        reader.Document{Creator: "Writer 2000", Pages: chapterPages(2)},
			wantTitle:  "the long road",
			wantAuthor: "Writer 2000",
		},
		{
			name:       "upload overrides",
			doc:        reader.Document{Title: "Meta", Author: "Meta Author", Pages: chapterPages(2)},
			up:         Upload{Title: "Given", Author: "Given Author", CoverURL: "https://example.com/c.jpg"},
			wantTitle:  "Given",
			wantAuthor: "Given Author",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.ingester(fixedDoc(&tt.doc))
			tt.up.Path = f.file
			book, err := in.Ingest(context.Background(), f.admin, tt.up)
			if err != nil {
				t.Fatalf("Ingest failed: %v", err)
			}
			if book.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", book.Title, tt.wantTitle)
			}
			if book.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", book.Author, tt.wantAuthor)
			}
			if tt.up.CoverURL != "" && book.CoverURL != tt.up.CoverURL {
				t.Errorf("CoverURL = %q", book.CoverURL)
			}
		})
	}
}

func TestIngestRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	in := f.ingester(fixedDoc(&reader.Document{Pages: chapterPages(2)}))

	plain, _ := f.store.Register("reader", "r@example.com", "pw")
	for _, u := range []*state.User{nil, plain} {
		if _, err := in.Ingest(context.Background(), u, Upload{Path: f.file}); !errors.Is(err, ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	}
	if len(f.cat.List()) != 0 {
		t.Error("forbidden upload reached the catalog")
	}
}

func TestIngestExtractionFailure(t *testing.T) {
	f := newFixture(t)
	cause := errors.New("bad xref table")
	in := f.ingester(reader.ExtractorFunc(func(ctx context.Context, filename string) (*reader.Document, error) {
		return nil, fmt.Errorf("%w: %s: %w", reader.ErrProcessingFailed, filepath.Base(filename), cause)
	}))

	_, err := in.Ingest(context.Background(), f.admin, Upload{Path: f.file})
	if !errors.Is(err, reader.ErrProcessingFailed) || !errors.Is(err, cause) {
		t.Errorf("err = %v, want processing failure wrapping cause", err)
	}
}

func TestIngestEmptyDocument(t *testing.T) {
	f := newFixture(t)
	in := f.ingester(fixedDoc(&reader.Document{}))

	_, err := in.Ingest(context.Background(), f.admin, Upload{Path: f.file})
	if !errors.Is(err, catalog.ErrNoChapters) {
		t.Errorf("err = %v, want ErrNoChapters", err)
	}
}

func TestIngestDuplicate(t *testing.T) {
	f := newFixture(t)
	in := f.ingester(fixedDoc(&reader.Document{Pages: chapterPages(2)}))
	ctx := context.Background()

	first, err := in.Ingest(ctx, f.admin, Upload{Path: f.file})
	if err != nil {
		t.Fatalf("first Ingest failed: %v", err)
	}
	_, err = in.Ingest(ctx, f.admin, Upload{Path: f.file})
	if !errors.Is(err, ErrDuplicate) || !strings.Contains(err.Error(), first.ID) {
		t.Errorf("err = %v, want ErrDuplicate naming %s", err, first.ID)
	}
	forced, err := in.Ingest(ctx, f.admin, Upload{Path: f.file, Force: true})
	if err != nil {
		t.Fatalf("forced Ingest failed: %v", err)
	}
	if n := len(f.cat.List()); n != 2 {
		t.Errorf("catalog has %d books, want 2", n)
	}

	// A hash pointing at a removed book no longer blocks the file.
	f.cat.Remove(forced.ID)
	if _, err := in.Ingest(ctx, f.admin, Upload{Path: f.file}); err != nil {
		t.Errorf("Ingest after removal failed: %v", err)
	}
}

func TestPrepareReportsStrategy(t *testing.T) {
	f := newFixture(t)
	in := f.ingester(fixedDoc(&reader.Document{Pages: []string{"A few words. Not many."}}))

	d, err := in.Prepare(context.Background(), Upload{Path: f.file})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if d.Strategy != "chunks" {
		t.Errorf("Strategy = %q, want chunks", d.Strategy)
	}
	if d.Pages != 1 || len(d.Book.Content) != 1 {
		t.Errorf("Pages %d, chapters %d", d.Pages, len(d.Book.Content))
	}
	if len(f.cat.List()) != 0 {
		t.Error("Prepare must not store the book")
	}
}
