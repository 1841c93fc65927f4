package analysis

import (
	"slices"
	"strings"
)

var (
	questionStarters = []string{
		"what", "how", "why", "when", "which", "who", "where", "tell me", "show me",
		"give me", "list", "find", "can you", "could you", "should i",
		"analyze reviews", "summarize data",
	}
	queryKeywords = []string{
		"sentiment breakdown", "theme analysis", "feature suggestions",
		"top complaints", "overall status", "satisfaction score",
	}
	commandVerbs = []string{"analyze", "summarize", "list", "show", "tell", "find"}

	contextStarters = []string{
		"lol", "haha", "ha", "ok", "okay", "yes", "no", "yep", "nope", "check", "look",
		"see", "above", "that", "this", "those", "from", "based", "regarding", "about",
		"using", "with", "according",
	}
	referencePhrases = []string{
		"above", "previous", "last", "that feedback", "this feedback", "those feedback",
		"the csv", "that csv", "the data", "that data", "from above", "from that",
		"from the", "based on",
	}
	opinionMarkers = []string{
		"good", "great", "excellent", "best", "amazing", "awesome", "love", "perfect",
		"fantastic", "outstanding", "wonderful", "brilliant", "smooth", "fast", "quick",
		"efficient", "effective", "reliable", "easy", "helpful", "useful", "intuitive",
		"clean", "beautiful", "simple", "nice", "pleased", "happy", "satisfied",
		"bad", "terrible", "awful", "worst", "hate", "issue", "broken", "slow", "crash",
		"crashes", "bug", "error", "problem", "fail", "fails", "failing", "poor",
		"useless", "difficult", "confusing", "frustrating", "annoying", "disappointing",
		"laggy", "freeze", "freezing", "unusable", "lost",
		"okay", "ok", "decent", "average", "mediocre", "acceptable",
	}
)

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsQuestion reports whether a chat message asks about existing data rather
// than supplying new feedback.
func IsQuestion(message string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))
	words := len(strings.Fields(msg))

	switch {
	case strings.HasSuffix(msg, "?"):
		return true
	case hasAnyPrefix(msg, questionStarters):
		return true
	case containsAny(msg, queryKeywords) && words < 10:
		return true
	case hasAnyPrefix(msg, commandVerbs) && words < 8:
		return true
	}
	return false
}

// IsNewFeedback reports whether a chat message should be analyzed as fresh
// customer feedback. Ambiguous messages are treated as questions.
func IsNewFeedback(message string) bool {
	if IsQuestion(message) {
		return false
	}

	msg := strings.ToLower(strings.TrimSpace(message))
	words := strings.Fields(msg)

	switch {
	case len(words) <= 2:
		return false
	case slices.Contains(contextStarters, words[0]):
		return false
	case containsAny(msg, referencePhrases):
		return false
	case len(words) > 8:
		return true
	}

	for _, w := range words {
		if slices.Contains(opinionMarkers, w) {
			return true
		}
	}
	return false
}
