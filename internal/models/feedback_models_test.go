package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentDistributionPercentages(t *testing.T) {
	var empty SentimentDistribution
	assert.Zero(t, empty.Total())
	assert.Zero(t, empty.PositivePercentage())
	assert.Zero(t, empty.NegativePercentage())

	d := SentimentDistribution{Positive: 2, Neutral: 1, Negative: 1}
	assert.Equal(t, 4, d.Total())
	assert.InDelta(t, 50.0, d.PositivePercentage(), 0.001)
	assert.InDelta(t, 25.0, d.NegativePercentage(), 0.001)
}

func TestChatResponseEventFlattensReply(t *testing.T) {
	var ev ChatResponseEvent
	err := json.Unmarshal([]byte(`{"message_id":"m1","conversation_id":"c1","response":"Thanks!","success":true}`), &ev)
	require.NoError(t, err)

	assert.Equal(t, "m1", ev.MessageID)
	assert.Equal(t, "c1", ev.ConversationID)
	assert.Equal(t, "Thanks!", ev.Response)
	assert.Nil(t, ev.Analysis)
}
