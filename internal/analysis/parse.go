package analysis

import (
	"strings"
	"unicode/utf8"
)

const (
	singleFeedbackMaxWords = 50
	minFeedbackLength      = 10
)

// ParseFeedbacks splits pasted text into individual feedbacks. Short
// single-line text is one feedback; anything else is taken line by line,
// dropping quotes and lines too short to carry an opinion.
func ParseFeedbacks(text string) []string {
	trimmed := strings.TrimSpace(text)
	if len(strings.Fields(text)) < singleFeedbackMaxWords && !strings.Contains(text, "\n") {
		return []string{trimmed}
	}

	var feedbacks []string
	for _, line := range strings.Split(text, "\n") {
		clean := cleanFeedback(line)
		if utf8.RuneCountInString(clean) > minFeedbackLength {
			feedbacks = append(feedbacks, clean)
		}
	}
	if len(feedbacks) == 0 {
		return []string{trimmed}
	}
	return feedbacks
}

func cleanFeedback(s string) string {
	return strings.Trim(strings.Trim(strings.TrimSpace(s), `"`), "'")
}
