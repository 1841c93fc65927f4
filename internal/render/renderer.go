package render

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// Section is the view-model of one card. Title and Icon are nil when the
// card has no heading row.
type Section struct {
	Title           *string `json:"title"`
	Icon            *string `json:"icon"`
	BackgroundClass string  `json:"background_class"`
	BorderClass     string  `json:"border_class"`
	TitleColorClass string  `json:"title_color_class"`
	Body            string  `json:"body_text"`
	Raw             string  `json:"raw_text"`
	Rule            string  `json:"rule,omitempty"`
}

// Response is a rendered message: one sentiment for the whole text and its
// sections in order.
type Response struct {
	Sentiment Sentiment `json:"sentiment"`
	Sections  []Section `json:"sections"`
}

// Renderer turns analysis messages into section cards. It holds no mutable
// state and is safe for concurrent use.
type Renderer struct {
	styles StyleConfig
	preset Preset
	strip  *regexp2.Regexp
}

type Option func(*Renderer)

func WithStyleConfig(styles StyleConfig) Option {
	return func(r *Renderer) { r.styles = styles }
}

func WithPreset(preset Preset) Option {
	return func(r *Renderer) { r.preset = preset }
}

// WithRules swaps the rule table but keeps the preset's strip labels.
func WithRules(rules []Rule) Option {
	return func(r *Renderer) { r.preset.Rules = rules }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		styles: DefaultStyleConfig(),
		preset: Classic(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.strip = compileStripper(r.preset.Labels)
	return r
}

func (r *Renderer) Preset() string {
	return r.preset.Name
}

// Render classifies text once and builds a card for every section. It never
// fails; empty input gives no sections.
func (r *Renderer) Render(text string) Response {
	overall := Classify(text)
	segments := Split(text)

	sections := make([]Section, 0, len(segments))
	for _, trimmed := range segments {
		sections = append(sections, r.section(trimmed, overall))
	}
	return Response{Sentiment: overall, Sections: sections}
}

func (r *Renderer) section(trimmed string, overall Sentiment) Section {
	s := Section{Raw: trimmed, Body: r.StripTitle(trimmed)}

	rule, ok := r.Match(trimmed)
	if !ok {
		s.BackgroundClass = DefaultStyle.Background
		s.BorderClass = DefaultStyle.Border
		s.TitleColorClass = DefaultStyle.TitleColor
		return s
	}

	style := rule.Style
	if rule.FromSentiment {
		palette := r.styles.Palette(overall)
		style = palette.Style()
		icon := palette.Icon
		s.Icon = &icon
	}
	if rule.Title != nil {
		title := rule.Title(overall)
		s.Title = &title
	}
	s.Rule = rule.Name
	s.BackgroundClass = style.Background
	s.BorderClass = style.Border
	s.TitleColorClass = style.TitleColor
	return s
}

// Match returns the first rule claiming the section. Rules without a Match
// func never claim anything.
func (r *Renderer) Match(trimmed string) (Rule, bool) {
	lower := strings.ToLower(trimmed)
	for _, rule := range r.preset.Rules {
		if rule.Match != nil && rule.Match(trimmed, lower) {
			return rule, true
		}
	}
	return Rule{}, false
}

// StripTitle removes one leading section label ("**Breakdown:**", "###
// Expected Impact" ...) and returns the rest. If nothing would be left the
// trimmed input comes back unchanged.
func (r *Renderer) StripTitle(trimmed string) string {
	if r.strip == nil {
		return trimmed
	}
	m, err := r.strip.FindStringMatch(trimmed)
	if err != nil || m == nil || m.Index != 0 {
		return trimmed
	}
	cleaned := strings.TrimSpace(string([]rune(trimmed)[m.Length:]))
	if cleaned == "" {
		return trimmed
	}
	return cleaned
}

var classicRenderer = New()

// StripTitle strips a leading label using the classic label set.
func StripTitle(trimmed string) string {
	return classicRenderer.StripTitle(trimmed)
}

func compileStripper(labels []string) *regexp2.Regexp {
	if len(labels) == 0 {
		return nil
	}
	sorted := append([]string(nil), labels...)
	// Longest first so "Priority Actions" wins over "Priority Action".
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	escaped := make([]string, len(sorted))
	for i, l := range sorted {
		escaped[i] = regexp2.Escape(l)
	}
	pattern := `^(###\s*)?\**\s*(` + strings.Join(escaped, "|") + `)\s*:?\**\s*\n?`
	return regexp2.MustCompile(pattern, regexp2.None)
}
