package theme

import "github.com/charmbracelet/lipgloss"

// HighContrastTheme returns a high-contrast theme for gallery floors with
// strong ambient light
func HighContrastTheme() Theme {
	return Theme{
		Name: "highcontrast",

		Background: lipgloss.Color("16"),
		Foreground: lipgloss.Color("231"),

		Border:        lipgloss.Color("250"),
		BorderFocused: lipgloss.Color("226"),
		Selection:     lipgloss.Color("238"),
		Cursor:        lipgloss.Color("231"),

		Success: lipgloss.Color("46"),
		Warning: lipgloss.Color("226"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("51"),

		TableHeader:      lipgloss.Color("226"),
		TableRowEven:     lipgloss.Color("16"),
		TableRowOdd:      lipgloss.Color("233"),
		TableRowSelected: lipgloss.Color("238"),

		BadgeText:    lipgloss.Color("51"),
		BadgeDate:    lipgloss.Color("226"),
		BadgeRange:   lipgloss.Color("46"),
		BadgeBoolean: lipgloss.Color("213"),
	}
}
