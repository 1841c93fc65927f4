package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFeedbacks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"short single line", "  Great app  ", []string{"Great app"}},
		{"one per line", "\"Love the new dashboard\"\nok\n'Checkout keeps crashing'", []string{"Love the new dashboard", "Checkout keeps crashing"}},
		{"nothing long enough", "hi\nyo", []string{"hi\nyo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFeedbacks(tt.text))
		})
	}
}

func TestIsQuestion(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"How is pricing perceived?", true},
		{"show me complaints", true},
		{"sentiment breakdown please", true},
		{"summarize", true},
		{"The app crashes every time I open it", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuestion(tt.msg))
		})
	}
}

func TestIsNewFeedback(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"The app crashes every time I open it", true},
		{"Support answered within minutes and solved my billing problem for good", true},
		{"ok thanks", false},
		{"based on that data it looks fine", false},
		{"what about pricing", false},
		{"my order arrived today", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNewFeedback(tt.msg))
		})
	}
}
