//go:build gui

package main

import (
	"strings"
	"testing"

	"github.com/metcalfc/shelf/cmd"
	"github.com/metcalfc/shelf/internal/catalog"
	"github.com/metcalfc/shelf/internal/reader"
)

func TestChapterTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Chapter 1\nBody", "Chapter 1"},
		{"\n  Prologue  \nBody", "Prologue"},
		{strings.Repeat("x", 50), strings.Repeat("x", 40) + "..."},
	}
	for _, tt := range tests {
		if got := chapterTitle(tt.in); got != tt.want {
			t.Errorf("chapterTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModelSave(t *testing.T) {
	var saved []int
	chapters := []string{"one", "two", "three", "four"}
	m := newModel(&cmd.Session{
		Book:  catalog.Book{ID: "b1", Content: chapters},
		Pager: reader.NewPager(chapters, 2),
		Save:  func(p int) error { saved = append(saved, p); return nil },
	})
	m.save()
	if len(saved) != 1 || saved[0] != 75 {
		t.Errorf("saved = %v, want [75]", saved)
	}
	if !strings.HasPrefix(m.status(), "Chapter 3/4 | 75%") {
		t.Errorf("status = %q", m.status())
	}
}
