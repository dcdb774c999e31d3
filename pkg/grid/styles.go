package grid

import "github.com/charmbracelet/lipgloss"

// Theme bundles every style the grid renders with. It is a plain value:
// build one with DefaultTheme (or construct your own), pass it in, and it
// never changes afterwards. No package-level mutable style state.
type Theme struct {
	Header     lipgloss.Style
	ColumnHead lipgloss.Style
	Name       lipgloss.Style
	NameDirty  lipgloss.Style
	Selected   lipgloss.Style
	Cell       lipgloss.Style
	ValueYes   lipgloss.Style
	ValueNo    lipgloss.Style
	Muted      lipgloss.Style
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
}

// DefaultTheme returns the standard grid theme.
func DefaultTheme() Theme {
	var (
		primaryColor = lipgloss.Color("212")
		mutedColor   = lipgloss.Color("241")
		successColor = lipgloss.Color("42")
		errorColor   = lipgloss.Color("196")
	)

	return Theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor),
		ColumnHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		Name: lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")),
		NameDirty: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")),
		Cell:     lipgloss.NewStyle(),
		ValueYes: lipgloss.NewStyle().Foreground(successColor),
		ValueNo:  lipgloss.NewStyle().Foreground(errorColor),
		Muted:    lipgloss.NewStyle().Foreground(mutedColor),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		StatusErr: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(mutedColor),
	}
}
