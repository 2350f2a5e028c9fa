package cmd

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/metcalfc/shelf/internal/ingest"
	"github.com/metcalfc/shelf/internal/state"
)

const admin = "admin@universe.com"

// env isolates a test from the user's config and state.
func env(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("SHELF_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("SHELF_ADMIN_EMAIL", "")
	t.Setenv("SHELF_LOG_LEVEL", "error")
	t.Setenv("SHELF_PASSWORD", "")
	return dir
}

func run(t *testing.T, read ReadFunc, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(read)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, nil, args...)
	if err != nil {
		t.Fatalf("shelf %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func writeBook(t *testing.T, dir string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("Copyright page\n\n")
	for _, n := range []string{"1", "2", "3"} {
		sb.WriteString("Chapter " + n + "\n")
		sb.WriteString(strings.Repeat("The story goes on and on. ", 8))
		sb.WriteString("\n\n")
	}
	path := filepath.Join(dir, "night_train.txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func onlyBook(t *testing.T, dir string) catalog.Book {
	t.Helper()
	c, err := catalog.Open(filepath.Join(dir, "state"))
	if err != nil {
		t.Fatal(err)
	}
	books := c.List()
	if len(books) != 1 {
		t.Fatalf("catalog has %d books, want 1", len(books))
	}
	return books[0]
}

func TestAccountCommands(t *testing.T) {
	env(t)

	out := mustRun(t, "register", "ann", "ann@example.com", "-p", "pw")
	if !strings.Contains(out, "ann (reader)") {
		t.Errorf("register output = %q", out)
	}
	if out := mustRun(t, "whoami"); !strings.Contains(out, "ann <ann@example.com>") {
		t.Errorf("whoami output = %q", out)
	}
	mustRun(t, "logout")
	if _, err := run(t, nil, "whoami"); !errors.Is(err, state.ErrNotLoggedIn) {
		t.Errorf("whoami after logout err = %v", err)
	}
	if _, err := run(t, nil, "login", "ann@example.com", "-p", "nope"); !errors.Is(err, state.ErrInvalidCredentials) {
		t.Errorf("bad login err = %v", err)
	}

	t.Setenv("SHELF_PASSWORD", "pw")
	if out := mustRun(t, "login", "ANN@example.com"); !strings.Contains(out, "Logged in as ann") {
		t.Errorf("login output = %q", out)
	}
}

func TestAddRequiresAdmin(t *testing.T) {
	dir := env(t)
	book := writeBook(t, dir)

	if _, err := run(t, nil, "add", book); !errors.Is(err, state.ErrNotLoggedIn) {
		t.Errorf("anonymous add err = %v", err)
	}
	mustRun(t, "register", "ann", "ann@example.com", "-p", "pw")
	if _, err := run(t, nil, "add", book); !errors.Is(err, ingest.ErrForbidden) {
		t.Errorf("reader add err = %v", err)
	}
}

func TestAddListShowRemove(t *testing.T) {
	dir := env(t)
	path := writeBook(t, dir)
	mustRun(t, "register", "root", admin, "-p", "pw")

	out := mustRun(t, "add", path, "--author", "R. Lane", "-t", "trains,mystery", "--description", "A journey.")
	if !strings.Contains(out, "night train") || !strings.Contains(out, "3 chapters") {
		t.Errorf("add output = %q", out)
	}
	b := onlyBook(t, dir)
	if b.Author != "R. Lane" || len(b.Tags) != 2 || !strings.HasPrefix(b.Content[0], "Chapter 1") {
		t.Errorf("stored book = %+v", b)
	}

	if _, err := run(t, nil, "add", path); !errors.Is(err, ingest.ErrDuplicate) {
		t.Errorf("second add err = %v", err)
	}

	if out := mustRun(t, "list"); !strings.Contains(out, "night train") {
		t.Errorf("list output = %q", out)
	}
	if out := mustRun(t, "search", "MYSTERY"); !strings.Contains(out, "night train") {
		t.Errorf("search output = %q", out)
	}
	if out := mustRun(t, "search", "cooking"); !strings.Contains(out, "No books found.") {
		t.Errorf("empty search output = %q", out)
	}

	show := mustRun(t, "show", b.ID[:8])
	for _, want := range []string{"A journey.", "trains · mystery", "1. Chapter 1", b.ID} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}

	mustRun(t, "remove", b.ID)
	if _, err := run(t, nil, "show", b.ID); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("show after remove err = %v", err)
	}
}

func TestSegmentPreview(t *testing.T) {
	dir := env(t)
	out := mustRun(t, "segment", writeBook(t, dir))
	for _, want := range []string{"night train", "Unknown Author", "3 chapters, split by headings (chapter)"} {
		if !strings.Contains(out, want) {
			t.Errorf("segment output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Copyright page") {
		t.Error("front matter should not become a chapter")
	}
}

func TestSegmentMissingFile(t *testing.T) {
	env(t)
	if _, err := run(t, nil, "segment", "/does/not/exist.pdf"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFavoritesAndComments(t *testing.T) {
	dir := env(t)
	mustRun(t, "seed")
	if out := mustRun(t, "seed"); !strings.Contains(out, "nothing added") {
		t.Errorf("second seed output = %q", out)
	}
	mustRun(t, "register", "ann", "ann@example.com", "-p", "pw")

	c, _ := catalog.Open(filepath.Join(dir, "state"))
	quantum := c.Search("quantum")[0]

	if out := mustRun(t, "fav", quantum.ID); !strings.Contains(out, "Added to favorites") {
		t.Errorf("fav output = %q", out)
	}
	if out := mustRun(t, "favorites"); !strings.Contains(out, "The Quantum Mind") || strings.Contains(out, "Mindful") {
		t.Errorf("favorites output = %q", out)
	}
	if out := mustRun(t, "fav", quantum.ID); !strings.Contains(out, "Removed from favorites") {
		t.Errorf("second fav output = %q", out)
	}

	mustRun(t, "comment", quantum.ID, "Loved", "chapter", "two", "-l", "3")
	out := mustRun(t, "comments", quantum.ID)
	if !strings.Contains(out, "ann (line 3): Loved chapter two") {
		t.Errorf("comments output = %q", out)
	}
	if _, err := run(t, nil, "comments"); !errors.Is(err, ingest.ErrForbidden) {
		t.Errorf("all comments as reader err = %v", err)
	}
	if _, err := run(t, nil, "comment", quantum.ID, "   "); !errors.Is(err, catalog.ErrEmptyComment) {
		t.Errorf("blank comment err = %v", err)
	}
}

func TestReadResumesAndSaves(t *testing.T) {
	dir := env(t)
	mustRun(t, "seed")
	c, _ := catalog.Open(filepath.Join(dir, "state"))
	book := c.Search("leadership")[0]

	var got *Session
	read := func(ctx context.Context, s *Session) error {
		got = s
		if s.Save != nil {
			s.Pager.Next()
			return s.Save(s.Pager.Percent())
		}
		return nil
	}

	// Anonymous readers start at the top and save nothing.
	if _, err := run(t, read, "read", book.ID); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Pager.Current != 0 || got.Save != nil {
		t.Errorf("anonymous session = chapter %d, save %v", got.Pager.Current, got.Save != nil)
	}

	mustRun(t, "register", "ann", "ann@example.com", "-p", "pw")
	if _, err := run(t, read, "read", book.ID); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Pager.Current != 1 {
		t.Fatalf("read did not advance: %d", got.Pager.Current)
	}

	// Saved 100% on a two chapter book resumes at the second chapter.
	if _, err := run(t, read, "read", book.ID); err != nil {
		t.Fatal(err)
	}
	if got.Pager.Current != 1 {
		t.Errorf("resumed at chapter %d, want 1", got.Pager.Current)
	}

	if _, err := run(t, read, "read", book.ID, "--fresh"); err != nil {
		t.Fatal(err)
	}
	if got.Book.ID != book.ID {
		t.Errorf("opened %q", got.Book.ID)
	}

	if _, err := run(t, read, "read", book.ID, "-c", "9"); err == nil {
		t.Error("expected error for a chapter past the end")
	}
	if _, err := run(t, nil, "read", book.ID); err == nil {
		t.Error("expected error without a reader")
	}
}

func TestCoverCommand(t *testing.T) {
	dir := env(t)
	out := filepath.Join(dir, "c.png")
	mustRun(t, "cover", "A", "Tale", "of", "Two", "Cities", "-o", out)

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("cover is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 400 {
		t.Errorf("cover is %dx%d", b.Dx(), b.Dy())
	}
}

func TestFormats(t *testing.T) {
	env(t)
	out := mustRun(t, "formats")
	for _, want := range []string{"PDF (.pdf)", "EPUB (.epub)", "Markdown (.md, .markdown)", "plain text"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigFile(t *testing.T) {
	dir := env(t)
	t.Setenv("SHELF_STATE_DIR", "")
	cfgPath := filepath.Join(dir, "shelf.yaml")
	stateDir := filepath.Join(dir, "elsewhere")
	os.WriteFile(cfgPath, []byte("state_dir: "+stateDir+"\nadmin_email: boss@example.com\n"), 0644)

	out := mustRun(t, "--config", cfgPath, "register", "boss", "boss@example.com", "-p", "pw")
	if !strings.Contains(out, "(admin)") {
		t.Errorf("configured admin email not honoured: %q", out)
	}
	if _, err := os.Stat(filepath.Join(stateDir, "accounts.json")); err != nil {
		t.Errorf("state not written to configured dir: %v", err)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Chapter 1\nbody", 60, "Chapter 1"},
		{"  héllo wörld  ", 5, "héllo..."},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := preview(tt.in, tt.n); got != tt.want {
			t.Errorf("preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestReadReceivesCommandContext(t *testing.T) {
	dir := env(t)
	mustRun(t, "seed")
	c, _ := catalog.Open(filepath.Join(dir, "state"))
	book := c.List()[0]

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var seen error
	root := NewRootCmd(func(ctx context.Context, s *Session) error {
		seen = ctx.Err()
		return nil
	})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"read", book.ID})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !errors.Is(seen, context.Canceled) {
		t.Errorf("reader saw ctx err %v, want context.Canceled", seen)
	}
}
