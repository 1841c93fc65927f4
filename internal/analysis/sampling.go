package analysis

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	MaxPromptSamples = 80
	maxPerPolarity   = 30
	samplingSeed     = 42
)

var (
	samplingNegative = []string{"bad", "terrible", "slow", "worst", "hate", "poor", "broken", "crash", "issue", "problem", "unusable", "awful"}
	samplingPositive = []string{"good", "great", "excellent", "love", "amazing", "best", "perfect", "fast", "smooth", "easy"}
)

// SampleForPrompt keeps large uploads within a model's context window while
// preserving the balance of complaints and praise. Sampling is seeded, so the
// same input always yields the same sample. The note describes the cut and is
// empty when nothing was dropped.
func SampleForPrompt(reviews []string, limit int) ([]string, string) {
	if limit <= 0 {
		limit = MaxPromptSamples
	}
	if len(reviews) <= limit {
		return reviews, ""
	}

	var negatives, positives, neutrals []string
	for _, r := range reviews {
		lower := strings.ToLower(r)
		isNeg := containsAny(lower, samplingNegative)
		isPos := containsAny(lower, samplingPositive)
		if isNeg {
			negatives = append(negatives, r)
		}
		if isPos {
			positives = append(positives, r)
		}
		if !isNeg && !isPos {
			neutrals = append(neutrals, r)
		}
	}

	rng := rand.New(rand.NewPCG(samplingSeed, samplingSeed))
	nNeg := min(len(negatives), maxPerPolarity)
	nPos := min(len(positives), maxPerPolarity)
	nNeu := min(max(0, limit-nNeg-nPos), len(neutrals))

	sampled := make([]string, 0, nNeg+nPos+nNeu)
	sampled = append(sampled, pick(rng, negatives, nNeg)...)
	sampled = append(sampled, pick(rng, positives, nPos)...)
	sampled = append(sampled, pick(rng, neutrals, nNeu)...)
	rng.Shuffle(len(sampled), func(i, j int) { sampled[i], sampled[j] = sampled[j], sampled[i] })

	note := fmt.Sprintf("(Showing %d representative samples out of %d total)", len(sampled), len(reviews))
	return sampled, note
}

func pick(rng *rand.Rand, from []string, n int) []string {
	out := make([]string, 0, n)
	for _, idx := range rng.Perm(len(from))[:n] {
		out = append(out, from[idx])
	}
	return out
}

// FormatForPrompt lays reviews out the way the analysis prompt expects.
func FormatForPrompt(reviews []string, note string) string {
	if len(reviews) == 1 {
		return fmt.Sprintf("Single feedback:\n%q", reviews[0])
	}

	var b strings.Builder
	b.WriteString("Customer feedbacks")
	if note != "" {
		b.WriteString(" " + note)
	}
	b.WriteString(":\n")
	n := 0
	for _, r := range reviews {
		clean := cleanFeedback(r)
		if clean == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %q\n", n, clean)
	}
	return b.String()
}
