package catalog

import "errors"

// Sentinel errors returned by the catalog package.
var (
	// ErrNotFound indicates no book has the requested ID.
	ErrNotFound = errors.New("catalog: book not found")

	// ErrNoChapters indicates a book without a single non-blank chapter.
	ErrNoChapters = errors.New("catalog: book has no chapters")

	// ErrNoTitle indicates a book with a blank title.
	ErrNoTitle = errors.New("catalog: book has no title")

	// ErrEmptyComment indicates a blank comment body.
	ErrEmptyComment = errors.New("catalog: empty comment")
)
