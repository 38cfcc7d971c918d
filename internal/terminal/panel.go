package terminal

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/runway/internal/runway"
)

// Panel colors
const (
	PanelBackground = "#FCE4EC"
	PanelAccent     = "#E91E63"
	maxPanelWidth   = 76
)

const credentialHelp = `**Get Started:**

1. Visit [OpenRouter](https://openrouter.ai/keys)
2. Create account & get key
3. Enter it with ` + "`/key <key>`" + ` or pass ` + "`--api-key`" + `
4. Or set ` + "`OPENROUTER_API_KEY`" + ` or ` + "`RUNWAY_API_KEY`"

const processingHelp = `**💡 Fashion Help:**

- Specify designer or city
- Ask about specific seasons
- Check your internet connection`

// FailureTitle returns the headline shown for a failed turn
func FailureTitle(kind runway.Kind, detail string) string {
	switch kind {
	case runway.KindMissingCredential:
		return "🔑 API key required"
	case runway.KindDecode:
		return "⚠️ Processing error. Try:"
	case runway.KindTransport:
		return "🌐 Network Error: " + detail
	default:
		return "❌ Unexpected error: " + detail
	}
}

// Remediation returns the markdown guidance shown under the headline, if any
func Remediation(kind runway.Kind) string {
	switch kind {
	case runway.KindMissingCredential:
		return credentialHelp
	case runway.KindDecode:
		return processingHelp
	default:
		return ""
	}
}

func newMarkdownRenderer(tty bool, width int) *glamour.TermRenderer {
	style := glamour.WithStandardStyle("notty")
	if tty {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	return r
}

func (p *Presenter) renderMarkdown(md string) string {
	if p.markdown == nil {
		return md
	}
	out, err := p.markdown.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// ShowFailure draws the guidance panel for a failed turn
func (p *Presenter) ShowFailure(kind runway.Kind, detail string) {
	p.endAnswer()

	width := p.width() - 4
	if width > maxPanelWidth {
		width = maxPanelWidth
	}

	title := p.styles.NewStyle().Bold(true).Foreground(lipgloss.Color(PanelAccent)).Render(FailureTitle(kind, detail))
	content := title
	if help := Remediation(kind); help != "" {
		content += "\n" + p.renderMarkdown(help)
	}

	box := p.styles.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(PanelAccent)).
		Padding(0, 1).
		Width(width)
	p.println(box.Render(content))
}
