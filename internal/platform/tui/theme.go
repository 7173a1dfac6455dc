package tui

import "github.com/charmbracelet/lipgloss"

// Theme contains the visual styles of the play screen.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Value    lipgloss.Style
	Dim      lipgloss.Style
	Help     lipgloss.Style

	// Key slots
	KeyCurrent lipgloss.Style
	KeyOther   lipgloss.Style
	KeyNext    lipgloss.Style

	// Feedback
	Valid   lipgloss.Style
	Invalid lipgloss.Style

	// Countdown and overlays
	Countdown lipgloss.Style
	Overlay   lipgloss.Style
	Won       lipgloss.Style
	Lost      lipgloss.Style
}

func keySlot(fg, border string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Foreground(lipgloss.Color(fg)).
		Bold(true).
		Padding(0, 2).
		Margin(0, 1)
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		KeyCurrent: keySlot("46", "46"),   // Green
		KeyOther:   keySlot("196", "88"),  // Red
		KeyNext:    keySlot("245", "240"), // Gray

		Valid:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Invalid: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Countdown: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(1, 4),
		Won:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Lost: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}
