package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

var (
	analyzedCount  = regexp.MustCompile(`Analyzed (\*\*)?\d+(\*\*)? feedback(/s|s)?\b`)
	singularPlural = regexp.MustCompile(`(^|[^\d])1 feedback(/s|s)\b`)
)

// NormalizeChatResponse rewrites the report's opening count to total and
// fixes "1 feedbacks" style pluralisation left by the model.
func NormalizeChatResponse(text string, total int) string {
	noun := "feedbacks"
	if total == 1 {
		noun = "feedback"
	}
	text = analyzedCount.ReplaceAllString(text, fmt.Sprintf("Analyzed ${1}%d${2} %s", total, noun))
	return singularPlural.ReplaceAllString(text, "${1}1 feedback")
}

// Validate reconciles a model-produced analysis with the number of feedbacks
// actually submitted.
func Validate(a *models.FeedbackAnalysis, expected int) {
	distTotal := a.SentimentDistribution.Total()

	total := expected
	switch {
	case expected == 1:
		total = 1
	case distTotal > expected:
		total = distTotal
	}
	a.TotalFeedbacksAnalyzed = total
	a.ChatResponse = NormalizeChatResponse(a.ChatResponse, total)

	if total == 1 {
		overall := strings.ToLower(a.OverallSentiment)
		a.SentimentDistribution = models.SentimentDistribution{}
		switch overall {
		case sentiment.Positive:
			a.SentimentDistribution.Positive = 1
		case sentiment.Negative:
			a.SentimentDistribution.Negative = 1
		case sentiment.Mixed:
			a.SentimentDistribution.Mixed = 1
		case sentiment.Neutral:
			a.SentimentDistribution.Neutral = 1
		}
	}

	for i := range a.Themes {
		switch strings.ToLower(a.Themes[i].Sentiment) {
		case sentiment.Positive:
			a.Themes[i].Satisfaction = 100
		case sentiment.Negative:
			a.Themes[i].Satisfaction = 0
		default:
			a.Themes[i].Satisfaction = 50
		}
	}
}
