package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Chunk packs the sentences of text into chunks of at most size characters.
// Sentences are split on runs of '.', '!' and '?' and rejoined with ". ".
// A single sentence longer than size becomes its own oversized chunk.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	var chunks []string
	var buf strings.Builder
	n := 0 // runes in buf
	flush := func() {
		if c := strings.TrimSpace(buf.String()); c != "" {
			chunks = append(chunks, c)
		}
		buf.Reset()
		n = 0
	}

	for _, sentence := range sentenceEnd.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		// A flushed chunk ends in "." with the trailing space trimmed.
		l := utf8.RuneCountInString(sentence)
		if n > 0 && n+l+1 > size {
			flush()
		}
		buf.WriteString(sentence)
		buf.WriteString(". ")
		n += l + 2
	}
	flush()

	return chunks
}
