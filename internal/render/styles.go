package render

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Palette is the visual treatment for one sentiment. Values are CSS class
// tokens; the presenters translate them for their medium.
type Palette struct {
	TextColor   string `toml:"text" json:"text_color"`
	BgColor     string `toml:"background" json:"bg_color"`
	BorderColor string `toml:"border" json:"border_color"`
	Icon        string `toml:"icon" json:"icon"`
}

// Style is the container treatment of a single section card.
type Style struct {
	Background string `json:"background_class"`
	Border     string `json:"border_class"`
	TitleColor string `json:"title_color_class"`
}

// DefaultStyle is used for sections no rule claims.
var DefaultStyle = Style{
	Background: "bg-zinc-900/50",
	Border:     "border-zinc-800",
	TitleColor: "text-zinc-400",
}

func (p Palette) Style() Style {
	return Style{Background: p.BgColor, Border: p.BorderColor, TitleColor: p.TextColor}
}

var defaultPalettes = map[Sentiment]Palette{
	Positive: {TextColor: "text-emerald-300", BgColor: "bg-emerald-950/40", BorderColor: "border-emerald-700/50", Icon: "✓"},
	Negative: {TextColor: "text-red-300", BgColor: "bg-red-950/40", BorderColor: "border-red-700/50", Icon: "⚠"},
	Neutral:  {TextColor: "text-amber-300", BgColor: "bg-amber-950/40", BorderColor: "border-amber-700/50", Icon: "◇"},
	Mixed:    {TextColor: "text-blue-300", BgColor: "bg-blue-950/40", BorderColor: "border-blue-700/50", Icon: "⊗"},
	Unknown:  {TextColor: "text-gray-300", BgColor: "bg-gray-950/40", BorderColor: "border-gray-700/50", Icon: "?"},
}

// StyleConfig maps every sentiment to a palette. The zero value behaves like
// DefaultStyleConfig. Instances are read-only once built.
type StyleConfig struct {
	palettes map[Sentiment]Palette
}

func DefaultStyleConfig() StyleConfig {
	return NewStyleConfig(nil)
}

// NewStyleConfig layers overrides on top of the default table. Empty fields in
// an override keep the default value.
func NewStyleConfig(overrides map[Sentiment]Palette) StyleConfig {
	palettes := make(map[Sentiment]Palette, len(defaultPalettes))
	for s, p := range defaultPalettes {
		palettes[s] = p
	}
	for s, o := range overrides {
		p := palettes[s]
		if o.TextColor != "" {
			p.TextColor = o.TextColor
		}
		if o.BgColor != "" {
			p.BgColor = o.BgColor
		}
		if o.BorderColor != "" {
			p.BorderColor = o.BorderColor
		}
		if o.Icon != "" {
			p.Icon = o.Icon
		}
		palettes[s] = p
	}
	return StyleConfig{palettes: palettes}
}

// Palette returns the treatment for s, falling back to the unknown entry.
func (c StyleConfig) Palette(s Sentiment) Palette {
	if c.palettes == nil {
		if p, ok := defaultPalettes[s]; ok {
			return p
		}
		return defaultPalettes[Unknown]
	}
	if p, ok := c.palettes[s]; ok {
		return p
	}
	return c.palettes[Unknown]
}

// LoadStyleConfig reads palette overrides from a TOML file with one table per
// sentiment, e.g.
//
//	[positive]
//	text = "text-green-300"
//	icon = "+"
func LoadStyleConfig(path string) (StyleConfig, error) {
	var raw map[string]Palette
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return StyleConfig{}, fmt.Errorf("[StyleConfig] failed to decode %s: %w", path, err)
	}

	overrides := make(map[Sentiment]Palette, len(raw))
	for label, p := range raw {
		s, ok := ParseSentiment(label)
		if !ok {
			return StyleConfig{}, fmt.Errorf("[StyleConfig] unknown sentiment %q in %s", label, path)
		}
		overrides[s] = p
	}
	return NewStyleConfig(overrides), nil
}
