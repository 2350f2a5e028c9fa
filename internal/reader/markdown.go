package reader

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"strings"
)

// MarkdownFormat implements Format for Markdown files. Every top-level header
// starts a new page; header markers are dropped so the titles read as plain
// heading lines.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// headerRegex matches markdown headers (# to ######)
var headerRegex = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

func (f *MarkdownFormat) Extract(ctx context.Context, filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc := &Document{}
	var page strings.Builder

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if match := headerRegex.FindStringSubmatch(line); match != nil {
			title := strings.TrimSpace(match[2])
			if len(match[1]) == 1 {
				if doc.Title == "" {
					doc.Title = title
				}
				doc.Pages = appendPage(doc.Pages, page.String())
				page.Reset()
			}
			line = title
		}

		page.WriteString(line)
		page.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	doc.Pages = appendPage(doc.Pages, page.String())

	return doc, ctx.Err()
}
