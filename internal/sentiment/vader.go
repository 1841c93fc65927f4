package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
	Mixed    = "mixed"
)

// compound scores inside (-vaderThreshold, vaderThreshold) are neutral
const vaderThreshold = 0.20

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText flattens feedback that arrives as markdown so
// emphasis and link syntax do not skew the lexicon.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	plainText = strings.Join(strings.Fields(plainText), " ")

	return RemoveLinks(plainText)
}

// AnalyzeWithVADER returns the compound score and its label.
func AnalyzeWithVADER(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	score := analyzer.PolarityScores(plainText).Compound
	return score, LabelForScore(score)
}

func LabelForScore(score float64) string {
	switch {
	case score >= vaderThreshold:
		return Positive
	case score <= -vaderThreshold:
		return Negative
	default:
		return Neutral
	}
}
