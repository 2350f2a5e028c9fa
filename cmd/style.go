package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/shelf/internal/catalog"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00")).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)

// bookLine renders a one-line catalog entry.
func bookLine(b catalog.Book, favorite bool, progress int) string {
	var sb strings.Builder
	if favorite {
		sb.WriteString(tagStyle.Render("★ "))
	}
	sb.WriteString(titleStyle.Render(b.Title))
	sb.WriteString(" ")
	sb.WriteString(authorStyle.Render("by " + b.Author))
	meta := fmt.Sprintf("  %s  %d chapters", shortID(b.ID), len(b.Content))
	if progress > 0 {
		meta += fmt.Sprintf("  %d%%", progress)
	}
	sb.WriteString(dimStyle.Render(meta))
	return sb.String()
}

// bookDetail renders everything known about a book except its text.
func bookDetail(b catalog.Book, favorite bool, progress int) string {
	var sb strings.Builder
	sb.WriteString(bookLine(b, favorite, progress))
	sb.WriteString("\n")
	if b.Description != "" {
		sb.WriteString("\n" + b.Description + "\n")
	}
	if len(b.Tags) > 0 {
		sb.WriteString("\n" + tagStyle.Render(strings.Join(b.Tags, " · ")) + "\n")
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf("\nid %s", b.ID)))
	if !b.UploadDate.IsZero() {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  added %s", b.UploadDate.Format(time.DateOnly))))
	}
	sb.WriteString("\n")
	for i, ch := range b.Content {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %3d. ", i+1)))
		sb.WriteString(preview(ch, 60))
		sb.WriteString("\n")
	}
	return sb.String()
}

func commentLine(c catalog.Comment) string {
	where := ""
	if c.Line > 0 {
		where = fmt.Sprintf(" (line %d)", c.Line)
	}
	head := dimStyle.Render(c.Timestamp.Local().Format(time.DateTime) + " ")
	return head + authorStyle.Render(c.Username+where+": ") + c.Content
}

// preview returns the first line of text shortened to n runes.
func preview(text string, n int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	r := []rune(line)
	if len(r) > n {
		return string(r[:n]) + "..."
	}
	return line
}

// shortID is enough of a UUID to type back in.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
