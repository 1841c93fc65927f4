package models

import "time"

type ThemeAnalysis struct {
	Theme        string   `json:"theme"`
	Count        int      `json:"count"`
	Sentiment    string   `json:"sentiment"`
	Examples     []string `json:"examples"`
	Percentage   float64  `json:"percentage"`
	Satisfaction int      `json:"satisfaction"`
}

type FeatureSuggestion struct {
	Feature       string  `json:"feature"`
	Priority      string  `json:"priority"`
	Reasoning     string  `json:"reasoning"`
	AffectedUsers int     `json:"affected_users"`
	ImpactScore   float64 `json:"impact_score,omitempty"`
}

type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Mixed    int `json:"mixed"`
}

func (d SentimentDistribution) Total() int {
	return d.Positive + d.Neutral + d.Negative + d.Mixed
}

func (d SentimentDistribution) PositivePercentage() float64 {
	if d.Total() == 0 {
		return 0
	}
	return float64(d.Positive) / float64(d.Total()) * 100
}

func (d SentimentDistribution) NegativePercentage() float64 {
	if d.Total() == 0 {
		return 0
	}
	return float64(d.Negative) / float64(d.Total()) * 100
}

// FeedbackAnalysis is the backend's analysis result. ChatResponse is the
// markdown report the chat view renders.
type FeedbackAnalysis struct {
	TotalFeedbacksAnalyzed int                   `json:"total_feedbacks_analyzed"`
	OverallSentiment       string                `json:"overall_sentiment"`
	SatisfactionIndex      float64               `json:"satisfaction_index"`
	SentimentDistribution  SentimentDistribution `json:"sentiment_distribution"`
	TotalThemesDetected    int                   `json:"total_themes_detected"`
	Themes                 []ThemeAnalysis       `json:"themes"`
	KeyFeaturesCount       int                   `json:"key_features_count"`
	FeatureSuggestions     []FeatureSuggestion   `json:"feature_suggestions"`
	ChatResponse           string                `json:"chat_response"`
	IsQuestionResponse     bool                  `json:"is_question_response"`
	AnalyzedAt             time.Time             `json:"analyzed_at"`
}
