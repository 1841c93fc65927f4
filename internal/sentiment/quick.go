package sentiment

import (
	"regexp"
	"strings"
)

// wordPattern treats letters and digits of any script as word characters.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var (
	positiveWords = wordSet(
		"good", "great", "excellent", "love", "amazing", "best", "smooth", "smoothly",
		"perfect", "fantastic", "outstanding", "wonderful", "brilliant", "fast", "quick",
		"easy", "helpful", "useful", "nice", "pleased", "happy", "satisfied", "beautiful",
		"clean", "intuitive", "reliable", "effective", "efficient", "improved", "better",
		"awesome", "like", "enjoy", "enjoyed", "enjoying", "superb", "neat", "clear",
		"stable", "works", "working", "joy", "delight", "delightful", "fluid",
	)
	negativeWords = wordSet(
		"bad", "terrible", "slow", "worst", "hate", "poor", "broken", "crash", "crashes",
		"crashing", "crashed", "bug", "bugs", "error", "errors", "problem", "problems",
		"fail", "fails", "failing", "failed", "failure", "useless", "awful", "horrible",
		"frustrating", "frustration", "annoying", "difficult", "confusing", "delayed",
		"delay", "not", "never", "cant", "cannot", "doesn", "wont", "missing",
		"lost", "laggy", "lag", "freeze", "freezing", "frozen", "unusable",
		"disappointing", "disappointed", "complaint", "complain",
	)
	// contrast connectors turn any one-sided signal into mixed
	mixedConnectors = wordSet(
		"but", "however", "although", "though", "yet", "while", "except",
		"unfortunately", "despite",
	)
)

func countHits(words []string, set map[string]struct{}) int {
	seen := make(map[string]struct{})
	for _, w := range words {
		if _, ok := set[w]; ok {
			seen[w] = struct{}{}
		}
	}
	return len(seen)
}

// Quick labels a single piece of feedback from word lists. It is used for
// per-row labels in bulk uploads where a model call per row is too costly.
func Quick(text string) string {
	words := tokenize(text)

	pos := countHits(words, positiveWords)
	neg := countHits(words, negativeWords)
	contrast := countHits(words, mixedConnectors) > 0

	switch {
	case pos > 0 && neg > 0:
		return Mixed
	case contrast && (pos > 0 || neg > 0):
		return Mixed
	case pos > 0:
		return Positive
	case neg > 0:
		return Negative
	}
	return Neutral
}

var (
	scorePositive = []string{
		"good", "great", "excellent", "love", "amazing", "best", "perfect", "wonderful",
		"clean", "easy", "smooth", "fast", "speed", "smoothly",
	}
	scoreNegative = []string{
		"bad", "terrible", "slow", "worst", "hate", "poor", "broken", "crash",
		"disappointed", "issue", "bug", "problem", "expensive", "battery",
	}
)

// QuickScore counts keyword substrings and returns a label with a confidence
// in [0.5, 0.9].
func QuickScore(text string) (string, float64) {
	lower := strings.ToLower(text)

	count := func(words []string) int {
		n := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				n++
			}
		}
		return n
	}
	pos, neg := count(scorePositive), count(scoreNegative)

	switch {
	case pos > neg:
		return Positive, min(0.9, 0.5+float64(pos)*0.1)
	case neg > pos:
		return Negative, min(0.9, 0.5+float64(neg)*0.1)
	}
	return Neutral, 0.5
}
