package ingest

import (
	"log/slog"

	"github.com/metcalfc/shelf/internal/cover"
	"github.com/metcalfc/shelf/internal/reader"
	"github.com/metcalfc/shelf/internal/segment"
	"github.com/metcalfc/shelf/internal/state"
)

// Config wires an Ingester to its collaborators. Catalog is required.
type Config struct {
	// Extractor reads page text out of uploaded files (default: reader.Default).
	Extractor reader.Extractor

	// Segmenter splits pages into chapters (default: segment options defaults).
	Segmenter *segment.Segmenter

	Catalog Catalog

	// State remembers which files were already ingested. Optional.
	State *state.StateStore

	// Covers renders a cover when the upload has no cover URL (default: cover.New()).
	Covers *cover.Generator

	// Logger for debug/error messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Extractor == nil {
		c.Extractor = reader.Default
	}
	if c.Segmenter == nil {
		c.Segmenter = segment.New(segment.Options{})
	}
	if c.Covers == nil {
		c.Covers = cover.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
