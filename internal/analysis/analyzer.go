package analysis

import (
	"context"
	"log/slog"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

// Analyzer turns a batch of feedbacks into an analysis report.
type Analyzer interface {
	Analyze(ctx context.Context, reviews []string) (models.FeedbackAnalysis, error)
}

// LocalAnalyzer needs no network: the report comes from keyword counts and the
// distribution from scoring each feedback with VADER.
type LocalAnalyzer struct{}

func (LocalAnalyzer) Analyze(ctx context.Context, reviews []string) (models.FeedbackAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return models.FeedbackAnalysis{}, err
	}

	a := Fallback(reviews)

	var dist models.SentimentDistribution
	for _, r := range reviews {
		_, label := sentiment.AnalyzeWithVADER(r)
		if label == sentiment.Neutral && sentiment.Quick(r) == sentiment.Mixed {
			label = sentiment.Mixed
		}
		switch label {
		case sentiment.Positive:
			dist.Positive++
		case sentiment.Negative:
			dist.Negative++
		case sentiment.Mixed:
			dist.Mixed++
		default:
			dist.Neutral++
		}
	}
	a.SentimentDistribution = dist

	Validate(&a, len(reviews))
	return a, nil
}

type fallbackAnalyzer struct {
	primary Analyzer
	local   LocalAnalyzer
}

// WithFallback wraps primary so that any failure is answered by the local
// analyzer. Context cancellation is still returned to the caller.
func WithFallback(primary Analyzer) Analyzer {
	return &fallbackAnalyzer{primary: primary}
}

func (f *fallbackAnalyzer) Analyze(ctx context.Context, reviews []string) (models.FeedbackAnalysis, error) {
	a, err := f.primary.Analyze(ctx, reviews)
	if err == nil {
		return a, nil
	}
	if ctx.Err() != nil {
		return models.FeedbackAnalysis{}, ctx.Err()
	}
	slog.Warn("[Analyzer] primary analyzer failed, using local fallback",
		slog.Int("feedbacks", len(reviews)),
		slog.String("error", err.Error()))
	return f.local.Analyze(ctx, reviews)
}
