package present

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentiview/internal/render"
)

const markdownExtensions = blackfriday.CommonExtensions | blackfriday.Autolink | blackfriday.Strikethrough

// bodyPolicy sanitizes the markdown output of each card body. Card wrappers
// are built outside of it so their class tokens survive.
var bodyPolicy = bluemonday.UGCPolicy()

// MarkdownToHTML renders a section body with GitHub-style tables, lists and
// emphasis, and strips anything unsafe.
func MarkdownToHTML(body string) string {
	out := blackfriday.Run([]byte(body), blackfriday.WithExtensions(markdownExtensions))
	return strings.TrimSpace(string(bodyPolicy.SanitizeBytes(out)))
}

// HTML renders every section as a card. Class names are emitted verbatim so
// the page stylesheet decides what they look like.
func HTML(resp render.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"space-y-4\" data-sentiment=\"%s\">\n", html.EscapeString(string(resp.Sentiment)))

	for _, s := range resp.Sections {
		fmt.Fprintf(&b, "<div class=\"%s border %s rounded-xl p-4\">\n",
			html.EscapeString(s.BackgroundClass), html.EscapeString(s.BorderClass))

		if s.Title != nil {
			b.WriteString("<div class=\"flex items-center gap-2 mb-2 border-b border-white/5 pb-2\">")
			if s.Icon != nil {
				fmt.Fprintf(&b, "<span class=\"text-lg %s\">%s</span>",
					html.EscapeString(s.TitleColorClass), html.EscapeString(*s.Icon))
			}
			fmt.Fprintf(&b, "<p class=\"text-[10px] font-black %s uppercase tracking-[0.2em]\">%s</p>",
				html.EscapeString(s.TitleColorClass), html.EscapeString(*s.Title))
			b.WriteString("</div>\n")
		}

		b.WriteString("<div class=\"markdown-content text-sm leading-relaxed text-zinc-200\">\n")
		b.WriteString(MarkdownToHTML(s.Body))
		b.WriteString("\n</div>\n</div>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}
