package autocomplete

import "github.com/charmbracelet/lipgloss"

// Styles contains the style definitions of the search box.
type Styles struct {
	Prompt     lipgloss.Style
	Overlay    lipgloss.Style
	Row        lipgloss.Style
	FocusedRow lipgloss.Style
	Gutter     lipgloss.Style
	Spinner    lipgloss.Style
	Loading    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Row:        lipgloss.NewStyle(),
		FocusedRow: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Gutter:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Spinner:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Loading:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
