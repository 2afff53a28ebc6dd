package markup

import (
	"regexp"
	"strings"
)

// DefaultChunkSize bounds the length of a single page part.
const DefaultChunkSize = 1000

var headingPattern = regexp.MustCompile(`\n#{1,6} `)

// plainSeparators are tried in order once heading boundaries are exhausted.
var plainSeparators = []string{"\n\n", "\n", " "}

// SplitMarkdown splits a markdown document into parts of at most size
// characters, preferring heading boundaries, then blank lines, then single
// newlines. A document that already fits comes back as a single part.
func SplitMarkdown(doc string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	trimmed := strings.TrimSpace(doc)
	if trimmed == "" {
		return nil
	}

	var parts []string
	for _, chunk := range splitChunk(trimmed, size, 0) {
		if cleaned := strings.TrimSpace(chunk); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return parts
}

// splitChunk recursively splits text using the separator at the given level,
// packing neighbouring pieces back together up to the size limit.
func splitChunk(text string, size, level int) []string {
	if len(text) <= size {
		return []string{text}
	}

	if level > len(plainSeparators) {
		return hardSplit(text, size)
	}

	pieces, joiner := splitAtLevel(text, level)
	if len(pieces) <= 1 {
		if level < len(plainSeparators) {
			return splitChunk(text, size, level+1)
		}
		return hardSplit(text, size)
	}

	var out []string
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, buf.String())
			buf.Reset()
		}
	}

	for _, piece := range pieces {
		if len(piece) > size {
			flush()
			out = append(out, splitChunk(piece, size, level+1)...)
			continue
		}
		if buf.Len() > 0 && buf.Len()+len(joiner)+len(piece) > size {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString(joiner)
		}
		buf.WriteString(piece)
	}
	flush()

	return out
}

// splitAtLevel cuts text at the separator for the level. Level 0 cuts before
// each markdown heading so a heading opens its part; further levels use the
// plain separators.
func splitAtLevel(text string, level int) ([]string, string) {
	if level == 0 {
		matches := headingPattern.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			return []string{text}, ""
		}
		var pieces []string
		prev := 0
		for _, m := range matches {
			cut := m[0] + 1
			pieces = append(pieces, text[prev:cut])
			prev = cut
		}
		pieces = append(pieces, text[prev:])
		return pieces, ""
	}

	sep := plainSeparators[level-1]
	return strings.Split(text, sep), sep
}

func hardSplit(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}
