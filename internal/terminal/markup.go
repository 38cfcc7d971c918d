package terminal

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var (
	strongPattern = regexp.MustCompile(`<strong>(.*?)</strong>`)
	spanPattern   = regexp.MustCompile(`<span style='color: (#[0-9A-Fa-f]{6})'>(.*?)</span>`)
	tagPattern    = regexp.MustCompile(`</?(?:strong|span)(?:\s[^>]*)?>`)
)

// Strip removes the emphasis and color markup from answer text
func Strip(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Markup translates answer markup into terminal styles. Tags without a
// matching close are dropped.
func Markup(r *lipgloss.Renderer, s string) string {
	s = strongPattern.ReplaceAllStringFunc(s, func(m string) string {
		inner := strongPattern.FindStringSubmatch(m)[1]
		return r.NewStyle().Bold(true).Render(inner)
	})
	s = spanPattern.ReplaceAllStringFunc(s, func(m string) string {
		groups := spanPattern.FindStringSubmatch(m)
		return r.NewStyle().Foreground(lipgloss.Color(groups[1])).Bold(true).Render(groups[2])
	})
	return Strip(s)
}
