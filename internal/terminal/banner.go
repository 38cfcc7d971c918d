package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/runway/internal/runway"
)

// Feature is one card of the banner
type Feature struct {
	Title       string
	Description string
}

// Banner text
const (
	Title   = "👠 Fashion Event Tracker"
	Caption = "Your front-row seat to global fashion events, runway shows, and industry happenings"
)

// Features are the cards shown under the title
var Features = []Feature{
	{Title: "📅 Calendar", Description: "Upcoming shows & events"},
	{Title: "🌟 Trends", Description: "Emerging styles & colors"},
	{Title: "👗 Designers", Description: "New collections & debuts"},
	{Title: "📸 Street Style", Description: "Top looks from events"},
}

const cardWidth = 26

// ShowBanner draws the title, the caption and the feature cards
func (p *Presenter) ShowBanner() {
	title := p.styles.NewStyle().Bold(true).Foreground(lipgloss.Color(PanelAccent)).Render(Title)
	caption := p.styles.NewStyle().Faint(true).Render(Caption)

	card := p.styles.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(PanelAccent)).
		Padding(0, 1).
		Width(cardWidth)
	cards := make([]string, 0, len(Features))
	for _, f := range Features {
		cards = append(cards, card.Render(f.Title+"\n"+f.Description))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) > p.width() {
		row = lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1]) + "\n" +
			lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
	}

	p.println(title)
	p.println(caption)
	p.println(row)
}

// ShowMessage draws a stored message of the conversation
func (p *Presenter) ShowMessage(m runway.Message) {
	p.endAnswer()
	prefix := "👗 "
	if m.Role == runway.RoleUser {
		prefix = "You> "
	}
	p.println(prefix + p.format(m.Content))
}
