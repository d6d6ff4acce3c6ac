package output

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorDanger  = lipgloss.Color("#FF5F87")
	colorMuted   = lipgloss.Color("#888888")

	colorChartLine1 = lipgloss.Color("#7D56F4")
	colorChartLine2 = lipgloss.Color("#04B575")
	colorChartLine3 = lipgloss.Color("#F59E0B")
	colorChartLine4 = lipgloss.Color("#38BDF8")

	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	sectionStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	positiveStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	negativeStyle    = lipgloss.NewStyle().Foreground(colorDanger)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// painter applies lipgloss styles unless colour is disabled.
type painter struct {
	plain bool
}

func (p painter) paint(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

// signed styles a value green when non-negative and red otherwise.
func (p painter) signed(negative bool, text string) string {
	if negative {
		return p.paint(negativeStyle, text)
	}
	return p.paint(positiveStyle, text)
}
