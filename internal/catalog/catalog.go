// Package catalog stores books and their comments.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const catalogFileName = "catalog.json"

// Book is a catalog entry. Content holds the chapters in reading order.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	Content     []string  `json:"content"`
	Tags        []string  `json:"tags"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	UploadDate  time.Time `json:"upload_date,omitzero"`
}

// Comment is a reader's note on a book, optionally tied to a line.
type Comment struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Line      int       `json:"line,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type catalogFile struct {
	Books    []Book    `json:"books"`
	Comments []Comment `json:"comments"`
}

// Catalog is a JSON-file backed collection of books and comments.
// It is safe for concurrent use.
type Catalog struct {
	path string
	now  func() time.Time

	mu   sync.RWMutex
	data catalogFile
}

// Open loads the catalog stored in dir, creating dir if needed.
func Open(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	c := &Catalog{path: filepath.Join(dir, catalogFileName), now: time.Now}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add validates b, assigns it an ID and upload date, and stores it.
// Blank chapters and tags are dropped.
func (c *Catalog) Add(b Book) (Book, error) {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		return Book{}, ErrNoTitle
	}
	b.Content = nonBlank(b.Content)
	if len(b.Content) == 0 {
		return Book{}, ErrNoChapters
	}
	b.Tags = nonBlank(b.Tags)
	b.ID = uuid.NewString()
	if b.UploadDate.IsZero() {
		b.UploadDate = c.now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Books = append(c.data.Books, b)
	if err := c.save(); err != nil {
		c.data.Books = c.data.Books[:len(c.data.Books)-1]
		return Book{}, err
	}
	return b, nil
}

// Get returns the book with the given ID.
func (c *Catalog) Get(id string) (Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.data.Books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

// List returns all books in insertion order.
func (c *Catalog) List() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.data.Books)
}

// Remove deletes a book and all of its comments.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.data.Books, func(b Book) bool { return b.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	c.data.Books = slices.Delete(c.data.Books, i, i+1)
	c.data.Comments = slices.DeleteFunc(c.data.Comments, func(cm Comment) bool { return cm.BookID == id })
	return c.save()
}

// Search returns books whose title, author, description or any tag contains
// query, case-insensitively. A blank query matches every book.
func (c *Catalog) Search(query string) []Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Book
	for _, b := range c.data.Books {
		if matches(b, q) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b Book, q string) bool {
	for _, field := range []string{b.Title, b.Author, b.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return slices.ContainsFunc(b.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), q)
	})
}

// AddComment stores a comment on an existing book, assigning its ID and timestamp.
func (c *Catalog) AddComment(cm Comment) (Comment, error) {
	cm.Content = strings.TrimSpace(cm.Content)
	if cm.Content == "" {
		return Comment{}, ErrEmptyComment
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.ContainsFunc(c.data.Books, func(b Book) bool { return b.ID == cm.BookID }) {
		return Comment{}, ErrNotFound
	}
	cm.ID = uuid.NewString()
	cm.Timestamp = c.now().UTC()
	c.data.Comments = append(c.data.Comments, cm)
	if err := c.save(); err != nil {
		c.data.Comments = c.data.Comments[:len(c.data.Comments)-1]
		return Comment{}, err
	}
	return cm, nil
}

// Comments returns a book's comments, newest first.
func (c *Catalog) Comments(bookID string) []Comment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Comment
	for _, cm := range c.data.Comments {
		if cm.BookID == bookID {
			out = append(out, cm)
		}
	}
	newestFirst(out)
	return out
}

// AllComments returns every comment in the catalog, newest first.
func (c *Catalog) AllComments() []Comment {
	c.mu.RLock()
	out := slices.Clone(c.data.Comments)
	c.mu.RUnlock()
	newestFirst(out)
	return out
}

func newestFirst(cs []Comment) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Timestamp.After(cs[j].Timestamp) })
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) load() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &c.data)
}

func (c *Catalog) save() error {
	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}
