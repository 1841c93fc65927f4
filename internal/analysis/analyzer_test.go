package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiview/internal/models"
)

type stubAnalyzer struct {
	result models.FeedbackAnalysis
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(context.Context, []string) (models.FeedbackAnalysis, error) {
	s.calls++
	return s.result, s.err
}

func TestLocalAnalyzer(t *testing.T) {
	reviews := []string{"I love this app, it is excellent", "This is terrible, it keeps crashing"}

	a, err := LocalAnalyzer{}.Analyze(context.Background(), reviews)
	require.NoError(t, err)

	assert.Equal(t, 2, a.TotalFeedbacksAnalyzed)
	assert.Equal(t, 1, a.SentimentDistribution.Positive)
	assert.Equal(t, 1, a.SentimentDistribution.Negative)
	assert.Contains(t, a.ChatResponse, "Analyzed 2 feedbacks.")
}

func TestLocalAnalyzerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LocalAnalyzer{}.Analyze(ctx, []string{"fine"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithFallback(t *testing.T) {
	t.Run("primary result passes through", func(t *testing.T) {
		primary := &stubAnalyzer{result: models.FeedbackAnalysis{OverallSentiment: "mixed"}}

		a, err := WithFallback(primary).Analyze(context.Background(), []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, "mixed", a.OverallSentiment)
	})

	t.Run("primary failure uses local", func(t *testing.T) {
		primary := &stubAnalyzer{err: errors.New("rate limited")}

		a, err := WithFallback(primary).Analyze(context.Background(), []string{"terrible and slow"})
		require.NoError(t, err)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, "negative", a.OverallSentiment)
		assert.Equal(t, models.SentimentDistribution{Negative: 1}, a.SentimentDistribution)
	})

	t.Run("cancellation is not masked", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		primary := &stubAnalyzer{err: context.Canceled}

		_, err := WithFallback(primary).Analyze(ctx, []string{"x"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
