// Package reader extracts page text from document files and pages through a
// book's chapters.
package reader

import (
	"strings"
	"time"
)

// DefaultWPM is the reading speed used for time estimates.
const DefaultWPM = 250

// Pager holds the state for reading a book chapter by chapter.
type Pager struct {
	Chapters []string
	Current  int
	WPM      int
}

// NewPager creates a Pager positioned at chapter start, clamped to the book.
func NewPager(chapters []string, start int) *Pager {
	p := &Pager{Chapters: chapters, WPM: DefaultWPM}
	p.Jump(start)
	return p
}

// ParseText splits text into words.
func ParseText(text string) []string {
	return strings.Fields(text)
}

// Text returns the current chapter's text.
func (p *Pager) Text() string {
	if p.Current >= 0 && p.Current < len(p.Chapters) {
		return p.Chapters[p.Current]
	}
	return ""
}

// Next moves to the following chapter. Returns false at the last chapter.
func (p *Pager) Next() bool {
	if p.Current < len(p.Chapters)-1 {
		p.Current++
		return true
	}
	return false
}

// Prev moves to the preceding chapter. Returns false at the first chapter.
func (p *Pager) Prev() bool {
	if p.Current > 0 {
		p.Current--
		return true
	}
	return false
}

// Jump moves to chapter i if it exists.
func (p *Pager) Jump(i int) bool {
	if i >= 0 && i < len(p.Chapters) {
		p.Current = i
		return true
	}
	return false
}

// Progress returns the 1-based current chapter and the chapter count.
func (p *Pager) Progress() (current, total int) {
	return p.Current + 1, len(p.Chapters)
}

// Percent returns how far through the book the current chapter is, 0-100.
func (p *Pager) Percent() int {
	if len(p.Chapters) == 0 {
		return 0
	}
	return (p.Current + 1) * 100 / len(p.Chapters)
}

// AtEnd returns true if the pager is at the last chapter.
func (p *Pager) AtEnd() bool {
	return p.Current >= len(p.Chapters)-1
}

// ReadingTime estimates how long the current chapter takes to read.
func (p *Pager) ReadingTime() time.Duration {
	wpm := p.WPM
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	words := len(ParseText(p.Text()))
	return time.Duration(float64(words)/float64(wpm)*60) * time.Second
}

// ChapterForPercent maps saved progress back to a chapter index. It inverts
// Percent: the furthest chapter whose percentage does not exceed percent.
func ChapterForPercent(percent, total int) int {
	for c := total - 1; c > 0; c-- {
		if (c+1)*100/total <= percent {
			return c
		}
	}
	return 0
}
