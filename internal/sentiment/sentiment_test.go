package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuick(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"The app is fast and easy to use", Positive},
		{"Checkout keeps crashing and support is slow", Negative},
		{"Great design but the sync is broken", Mixed},
		{"Love it, however I expected more", Mixed},
		{"It arrived on Tuesday", Neutral},
		{"", Neutral},
		{"Although the packaging arrived on Tuesday", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Quick(tt.text))
		})
	}
}

func TestTokenizeUnicodeWords(t *testing.T) {
	assert.Equal(t, []string{"café", "décevant", "naïve", "2024"}, tokenize("Café décevant, naïve 2024!"))

	// "bugué" is one word, not "bug" followed by a stray letter.
	assert.Equal(t, Neutral, Quick("L'écran est bugué"))
}

func TestQuickScore(t *testing.T) {
	label, confidence := QuickScore("Great, fast and clean")
	assert.Equal(t, Positive, label)
	assert.InDelta(t, 0.8, confidence, 1e-9)

	label, confidence = QuickScore("bad battery, slow, broken, poor, terrible, worst")
	assert.Equal(t, Negative, label)
	assert.InDelta(t, 0.9, confidence, 1e-9)

	label, confidence = QuickScore("good but bad")
	assert.Equal(t, Neutral, label)
	assert.InDelta(t, 0.5, confidence, 1e-9)
}

func TestLabelForScore(t *testing.T) {
	assert.Equal(t, Positive, LabelForScore(0.2))
	assert.Equal(t, Negative, LabelForScore(-0.2))
	assert.Equal(t, Neutral, LabelForScore(0.19))
	assert.Equal(t, Neutral, LabelForScore(0))
}

func TestRemoveLinks(t *testing.T) {
	in := "See [the docs](https://example.com/docs) or www.example.com for more"
	assert.Equal(t, "See the docs or  for more", RemoveLinks(in))
}

func TestConvertMarkdownToText(t *testing.T) {
	assert.Equal(t, "Really great app", ConvertMarkdownToText("**Really** great _app_"))
}

func TestAnalyzeWithVADER(t *testing.T) {
	score, label := AnalyzeWithVADER("I love this product, it is wonderful and amazing!")
	assert.Greater(t, score, 0.2)
	assert.Equal(t, Positive, label)

	score, label = AnalyzeWithVADER("This is terrible, awful and I hate it.")
	assert.Less(t, score, -0.2)
	assert.Equal(t, Negative, label)
}
