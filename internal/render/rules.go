package render

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPreset = errors.New("unknown rule preset")

const (
	PresetClassic  = "classic"
	PresetExtended = "extended"
)

// Rule claims a section and decides how its card looks. Match receives the
// trimmed section and its lower-cased form.
type Rule struct {
	Name  string
	Match func(trimmed, lower string) bool
	Title func(overall Sentiment) string

	// FromSentiment rules take their icon and colors from the message-wide
	// palette instead of Style.
	FromSentiment bool
	Style         Style
}

// Preset is a named, ordered rule table plus the leading labels stripped from
// section bodies.
type Preset struct {
	Name   string
	Rules  []Rule
	Labels []string
}

var (
	neutralCard  = Style{Background: "bg-zinc-900/40", Border: "border-zinc-800", TitleColor: "text-zinc-300"}
	amberCard    = Style{Background: "bg-amber-950/40", Border: "border-amber-700/50", TitleColor: "text-amber-300"}
	emeraldCard  = Style{Background: "bg-emerald-950/40", Border: "border-emerald-700/50", TitleColor: "text-emerald-300"}
	redCard      = Style{Background: "bg-red-950/40", Border: "border-red-700/50", TitleColor: "text-red-300"}
	blueCard     = Style{Background: "bg-blue-950/40", Border: "border-blue-700/50", TitleColor: "text-blue-300"}
	forecastCard = Style{Background: "bg-emerald-950/20", Border: "border-zinc-800", TitleColor: "text-emerald-400"}
)

var classicLabels = []string{
	"Analyzed", "Key Insights", "Breakdown", "Main Strengths", "Strengths",
	"Main Issues", "Weaknesses", "Detailed Analysis", "Priority Actions",
	"Priority Action", "Recommendation", "Expected Impact",
}

func fixedTitle(title string) func(Sentiment) string {
	return func(Sentiment) string { return title }
}

func containsAny(words ...string) func(string, string) bool {
	return func(_, lower string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
}

func startsAnalyzed(trimmed, _ string) bool {
	return strings.HasPrefix(trimmed, "Analyzed")
}

func keywordRule(name, title string, style Style, words ...string) Rule {
	return Rule{Name: name, Match: containsAny(words...), Title: fixedTitle(title), Style: style}
}

// classicBody holds rules 2-9, shared by both presets.
func classicBody() []Rule {
	return []Rule{
		keywordRule("insights", "💡 Key Insights", neutralCard, "insights"),
		keywordRule("breakdown", "📊 Sentiment Distribution", amberCard, "breakdown"),
		keywordRule("strengths", "💪 Strategic Strengths", emeraldCard, "strengths"),
		keywordRule("issues", "🔴 Areas for Improvement", redCard, "issues", "weaknesses"),
		keywordRule("detailed-analysis", "🧐 Feature Breakdown", neutralCard, "detailed analysis"),
		keywordRule("priority-action", "🎯 Tactical Priority", blueCard, "priority action"),
		keywordRule("recommendation", "💡 Lead Strategist Advice", neutralCard, "recommendation"),
		keywordRule("expected-impact", "🚀 Business Forecast", forecastCard, "expected impact"),
	}
}

// Classic is the rule table of the first chat view.
func Classic() Preset {
	rules := []Rule{{
		Name:          "analysis",
		Match:         startsAnalyzed,
		Title:         fixedTitle("Intelligence Analysis"),
		FromSentiment: true,
	}}
	return Preset{
		Name:   PresetClassic,
		Rules:  append(rules, classicBody()...),
		Labels: classicLabels,
	}
}

var analysisTitles = map[Sentiment]string{
	Positive: "🟢 Positive Feedback Analysis",
	Negative: "🔴 Negative Feedback Analysis",
	Neutral:  "🟡 Neutral Feedback Analysis",
	Mixed:    "🔵 Mixed Feedback Analysis",
}

func qualifiedAnalysisTitle(s Sentiment) string {
	if title, ok := analysisTitles[s]; ok {
		return title
	}
	return "Intelligence Analysis"
}

// Extended is the later rule table: the analysis card also catches
// "feedback analysis" headings and carries a sentiment-qualified title, and
// pattern and onboarding sections get their own cards.
func Extended() Preset {
	body := classicBody()

	rules := []Rule{{
		Name: "analysis",
		Match: func(trimmed, lower string) bool {
			return startsAnalyzed(trimmed, lower) || strings.Contains(lower, "feedback analysis")
		},
		Title:         qualifiedAnalysisTitle,
		FromSentiment: true,
	}}
	rules = append(rules, body[0])
	rules = append(rules, keywordRule("patterns", "🔍 Emerging Patterns", neutralCard, "patterns"))
	rules = append(rules, body[1:]...)
	rules = append(rules, keywordRule("getting-started", "🚀 Getting Started", blueCard, "how to use"))

	labels := append([]string{"Feedback Analysis", "Patterns", "How to Use"}, classicLabels...)
	return Preset{Name: PresetExtended, Rules: rules, Labels: labels}
}

// LookupPreset resolves a preset by name. An empty name selects classic.
func LookupPreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetClassic:
		return Classic(), nil
	case PresetExtended:
		return Extended(), nil
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// PresetNames lists the presets LookupPreset accepts.
func PresetNames() []string {
	return []string{PresetClassic, PresetExtended}
}
