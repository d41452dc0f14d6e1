package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark gallery theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		TableHeader:      lipgloss.Color("62"),
		TableRowEven:     lipgloss.Color("235"),
		TableRowOdd:      lipgloss.Color("236"),
		TableRowSelected: lipgloss.Color("237"),

		BadgeText:    lipgloss.Color("117"),
		BadgeDate:    lipgloss.Color("180"),
		BadgeRange:   lipgloss.Color("150"),
		BadgeBoolean: lipgloss.Color("75"),
	}
}
