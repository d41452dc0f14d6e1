package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the kiosk color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Record table colors
	TableHeader      lipgloss.Color
	TableRowEven     lipgloss.Color
	TableRowOdd      lipgloss.Color
	TableRowSelected lipgloss.Color

	// Filter badge colors, one per predicate kind
	BadgeText    lipgloss.Color
	BadgeDate    lipgloss.Color
	BadgeRange   lipgloss.Color
	BadgeBoolean lipgloss.Color
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "highcontrast":
		return HighContrastTheme()
	case "default":
		return DefaultTheme()
	default:
		return DefaultTheme()
	}
}
