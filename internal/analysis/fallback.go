package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

var (
	fallbackPositive = []string{"good", "great", "excellent", "love", "amazing", "best", "perfect"}
	fallbackNegative = []string{"bad", "terrible", "slow", "worst", "hate", "poor", "broken", "crash"}
)

const fallbackReport = `Analyzed %d feedback/s. %s sentiment (%d%% satisfaction).

**Key Insights:**
- ⚠️ **Strengths/Weaknesses:** Analysis interrupted or low data quality.

**Detailed Analysis:**
⚡ System performing fallback classification.
🔴 Unable to extract detailed themes at this time.

**Priority Actions:**
1. 🔴 **CRITICAL:** Provide more detailed feedback
   - Issue: Low data density
   - Impact: Prevents deep neural analysis
   - Action: Submit multiple specific feedbacks

**Expected Impact:** 
Improving feedback detail will enable full keyword extraction and theme analysis.`

func countSubstrings(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// Fallback builds an analysis from keyword counts alone. It is what the chat
// shows when the model is unreachable or returns garbage.
func Fallback(reviews []string) models.FeedbackAnalysis {
	count := len(reviews)
	combined := strings.ToLower(strings.Join(reviews, " "))

	pos := countSubstrings(combined, fallbackPositive)
	neg := countSubstrings(combined, fallbackNegative)

	var (
		label string
		score float64
		dist  models.SentimentDistribution
	)
	switch {
	case pos > neg:
		label, score = sentiment.Positive, 0.75
		dist.Positive = count
	case neg > pos:
		label, score = sentiment.Negative, 0.25
		dist.Negative = count
	default:
		label, score = sentiment.Neutral, 0.5
		dist.Neutral = count
	}

	return models.FeedbackAnalysis{
		TotalFeedbacksAnalyzed: count,
		OverallSentiment:       label,
		SatisfactionIndex:      score,
		SentimentDistribution:  dist,
		Themes:                 []models.ThemeAnalysis{},
		FeatureSuggestions:     []models.FeatureSuggestion{},
		ChatResponse:           fmt.Sprintf(fallbackReport, count, capitalize(label), int(score*100)),
		AnalyzedAt:             time.Now().UTC(),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
