// Package segment splits extracted document text into chapter-like segments.
//
// Segmentation is a best-effort heuristic: heading patterns are tried in a fixed
// priority order, then the text falls back to page grouping, fixed-size chunking
// and finally the whole text as a single chapter. It never fails.
package segment

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMinChapterLen is the trimmed length a segment must exceed to count as a chapter.
	DefaultMinChapterLen = 100
	// DefaultChunkSize is the character budget for fixed-size chunks.
	DefaultChunkSize = 3000

	pageSeparator = "\n\n"
)

// Strategy names the branch that produced a segmentation.
type Strategy string

const (
	StrategyHeadings Strategy = "headings"
	StrategyPages    Strategy = "pages"
	StrategyChunks   Strategy = "chunks"
	StrategyWhole    Strategy = "whole"
)

// Options tunes the segmenter. Zero values select the defaults.
type Options struct {
	MinChapterLen int
	ChunkSize     int
}

func (o *Options) defaults() {
	if o.MinChapterLen <= 0 {
		o.MinChapterLen = DefaultMinChapterLen
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
}

// Result is a segmentation together with the branch that produced it.
type Result struct {
	Chapters []string
	Strategy Strategy
	// Pattern is the winning heading pattern name, set only for StrategyHeadings.
	Pattern string
}

// Segmenter converts ordered page text into ordered chapters.
type Segmenter struct {
	opts     Options
	patterns []Pattern
}

// New returns a Segmenter using the default heading patterns.
func New(opts Options) *Segmenter {
	opts.defaults()
	return &Segmenter{opts: opts, patterns: DefaultPatterns()}
}

// Options returns the effective options.
func (s *Segmenter) Options() Options { return s.opts }

// Split segments pages with the default options.
func Split(pages []string) []string {
	return New(Options{}).Split(pages)
}

// Split returns the chapters for pages. The result always has at least one element.
// Splitting is not idempotent: feeding a chapter back in as a single page may cut
// it differently, since headings are detected on the joined text anew.
func (s *Segmenter) Split(pages []string) []string {
	return s.Segment(pages).Chapters
}

// step is one entry of the fallback chain. run returns no chapters when the
// branch does not apply, handing over to the next step.
type step struct {
	strategy Strategy
	run      func(s *Segmenter, text string, pages []string) (chapters []string, pattern string)
}

// chain is evaluated top to bottom; the first step yielding chapters wins.
var chain = []step{
	{StrategyHeadings, (*Segmenter).byHeadings},
	{StrategyPages, (*Segmenter).byPages},
	{StrategyChunks, (*Segmenter).byChunks},
}

// Segment runs the strategy chain over pages and reports which branch won.
func (s *Segmenter) Segment(pages []string) Result {
	text := strings.Join(pages, pageSeparator)
	for _, st := range chain {
		if chapters, pattern := st.run(s, text, pages); len(chapters) > 0 {
			return Result{Chapters: chapters, Strategy: st.strategy, Pattern: pattern}
		}
	}
	return Result{Chapters: []string{text}, Strategy: StrategyWhole}
}

func (s *Segmenter) byHeadings(text string, _ []string) ([]string, string) {
	p, bounds, ok := s.Detect(text)
	if !ok {
		return nil, ""
	}
	var chapters []string
	for _, c := range Candidates(text, bounds) {
		if s.substantial(c.Text) {
			chapters = append(chapters, strings.TrimSpace(c.Text))
		}
	}
	return chapters, p.Name
}

func (s *Segmenter) byPages(_ string, pages []string) ([]string, string) {
	var chapters []string
	for _, p := range pages {
		if s.substantial(p) {
			chapters = append(chapters, strings.TrimSpace(p))
		}
	}
	if len(chapters) < 2 {
		return nil, ""
	}
	return chapters, ""
}

func (s *Segmenter) byChunks(text string, _ []string) ([]string, string) {
	return Chunk(text, s.opts.ChunkSize), ""
}

func (s *Segmenter) substantial(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > s.opts.MinChapterLen
}
