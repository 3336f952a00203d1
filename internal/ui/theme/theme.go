package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, leaning on the softer accents.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Teal     = lipgloss.Color("#94e2d5")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Title  = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext0)
	Hot    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Calm   = lipgloss.NewStyle().Foreground(Teal)
	Danger = lipgloss.NewStyle().Foreground(Red).Bold(true)

	UserBubble = lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Padding(0, 1)
	BotBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface0).
			Padding(0, 1)
)

// PhaseColor picks the accent for a breathing phase.
func PhaseColor(phase string) lipgloss.Color {
	switch phase {
	case "inhale":
		return Sapphire
	case "hold":
		return Lavender
	case "exhale":
		return Green
	default:
		return Teal
	}
}
