package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spacesedan/sentiview/internal/render"
)

const DefaultWidth = 80

// TerminalOptions controls terminal output. Style is a glamour standard style
// name ("dark", "light", "notty", ...).
type TerminalOptions struct {
	Width int
	Style string
}

// tokenColors maps the palette family of a class token ("text-emerald-300")
// onto a terminal color.
var tokenColors = map[string]lipgloss.Color{
	"emerald": lipgloss.Color("#6EE7B7"),
	"green":   lipgloss.Color("#86EFAC"),
	"red":     lipgloss.Color("#FCA5A5"),
	"amber":   lipgloss.Color("#FCD34D"),
	"blue":    lipgloss.Color("#93C5FD"),
	"gray":    lipgloss.Color("#D1D5DB"),
	"zinc":    lipgloss.Color("#A1A1AA"),
}

// TokenColor resolves a class token to a terminal color, defaulting to zinc.
func TokenColor(token string) lipgloss.Color {
	parts := strings.Split(token, "-")
	if len(parts) >= 2 {
		if c, ok := tokenColors[parts[1]]; ok {
			return c
		}
	}
	return tokenColors["zinc"]
}

// Terminal renders the sections as bordered cards with glamour-formatted
// bodies.
func Terminal(resp render.Response, opts TerminalOptions) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	style := opts.Style
	if style == "" {
		style = "dark"
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		// border and padding take four columns
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", fmt.Errorf("[Terminal] failed to create markdown renderer: %w", err)
	}

	cards := make([]string, 0, len(resp.Sections))
	for _, s := range resp.Sections {
		body, err := md.Render(s.Body)
		if err != nil {
			return "", fmt.Errorf("[Terminal] failed to render section body: %w", err)
		}
		body = strings.Trim(body, "\n")

		content := body
		if s.Title != nil {
			heading := *s.Title
			if s.Icon != nil {
				heading = *s.Icon + " " + heading
			}
			titleStyle := lipgloss.NewStyle().
				Bold(true).
				Foreground(TokenColor(s.TitleColorClass))
			content = titleStyle.Render(strings.ToUpper(heading)) + "\n" + body
		}

		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TokenColor(s.BorderClass)).
			Padding(0, 1).
			Width(width - 2)
		cards = append(cards, card.Render(content))
	}

	return strings.Join(cards, "\n"), nil
}
