package segment

import "regexp"

// Pattern is a named heading-detection rule.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

// space matches what JavaScript's \s does: ASCII whitespace plus \v and the
// Unicode space separators, so headings set with non-breaking spaces still match.
const space = `\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}`

// Heading patterns in priority order. The first two anchor ^ at the start of the
// text only; the last two are multi-line.
var (
	chapterHeading  = regexp.MustCompile(`(?i)(?:^|\n)[` + space + `]*(?:Chapter|CHAPTER)[` + space + `]+\d+`)
	partHeading     = regexp.MustCompile(`(?i)(?:^|\n)[` + space + `]*(?:Part|PART)[` + space + `]+\d+`)
	numberedHeading = regexp.MustCompile(`(?m)(?:^|\n)[` + space + `]*\d+\.[` + space + `]+[A-Z][^.]*$`)
	capsHeading     = regexp.MustCompile(`(?m)(?:^|\n)[` + space + `]*[A-Z][A-Z` + space + `]{10,}$`)
)

// DefaultPatterns returns the heading patterns in the order they are tried.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "chapter", Re: chapterHeading},
		{Name: "part", Re: partHeading},
		{Name: "numbered", Re: numberedHeading},
		{Name: "caps", Re: capsHeading},
	}
}

// Detect returns the first pattern with more than one match in text, along with
// the [start, end) offsets of its matches. Later patterns are not evaluated once
// one succeeds, even if they would match more often.
func (s *Segmenter) Detect(text string) (Pattern, [][]int, bool) {
	for _, p := range s.patterns {
		if m := p.Re.FindAllStringIndex(text, -1); len(m) > 1 {
			return p, m, true
		}
	}
	return Pattern{}, nil, false
}

// Candidate is a span of text provisionally treated as one chapter.
type Candidate struct {
	Start int
	End   int
	Text  string
}

// Len returns the candidate's length in bytes.
func (c Candidate) Len() int { return c.End - c.Start }

// Candidates cuts text at the heading matches in bounds. Each candidate begins at
// a heading and ends where the next heading begins; the last one runs to the end
// of text. Text before the first heading is not part of any candidate.
func Candidates(text string, bounds [][]int) []Candidate {
	out := make([]Candidate, 0, len(bounds))
	for i, b := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		out = append(out, Candidate{Start: b[0], End: end, Text: text[b[0]:end]})
	}
	return out
}
