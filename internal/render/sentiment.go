package render

import "strings"

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Mixed    Sentiment = "mixed"
	Unknown  Sentiment = "unknown"
)

// classifyOrder is checked top to bottom, so a message mentioning both
// "positive" and "negative" is negative.
var classifyOrder = []Sentiment{Negative, Positive, Neutral, Mixed}

// Classify guesses the dominant sentiment of a whole message from keyword
// substrings. It is a display heuristic, not sentiment analysis.
func Classify(text string) Sentiment {
	lower := strings.ToLower(text)
	for _, s := range classifyOrder {
		if strings.Contains(lower, string(s)) {
			return s
		}
	}
	return Unknown
}

// ParseSentiment maps a label such as "Positive" onto a Sentiment.
func ParseSentiment(label string) (Sentiment, bool) {
	switch s := Sentiment(strings.ToLower(strings.TrimSpace(label))); s {
	case Positive, Negative, Neutral, Mixed, Unknown:
		return s, true
	}
	return Unknown, false
}
