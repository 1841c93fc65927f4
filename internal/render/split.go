package render

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// sectionBreak matches a blank line, or a single line break when the next
// line opens with bold or a heading. The lookahead keeps the marker with the
// section it starts.
var sectionBreak = regexp2.MustCompile(`\n\n|\n(?=\*\*|###)`, regexp2.None)

// Split breaks a message into trimmed, non-empty raw sections in order.
func Split(text string) []string {
	runes := []rune(text)
	var segments []string

	start := 0
	m, err := sectionBreak.FindRunesMatch(runes)
	for err == nil && m != nil {
		segments = appendSegment(segments, string(runes[start:m.Index]))
		start = m.Index + m.Length
		m, err = sectionBreak.FindNextMatch(m)
	}
	return appendSegment(segments, string(runes[start:]))
}

func appendSegment(segments []string, raw string) []string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return append(segments, trimmed)
	}
	return segments
}
