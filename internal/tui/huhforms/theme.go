package huhforms

import (
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/quickanswers/internal/config/colors"
)

// NewTheme styles the form with the configured colors. Blurred fields drop
// their border and dim the title; errors stay visible in both states.
func NewTheme(scheme colors.ColorScheme) huh.Theme {
	accent := lipgloss.Color(scheme.Accent)
	subtle := lipgloss.Color(scheme.Subtle)
	invalid := lipgloss.Color(scheme.Invalid)
	title := lipgloss.Color(scheme.Title)

	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		styles := huh.ThemeBase(isDark)

		focused := &styles.Focused
		focused.Base = focused.Base.BorderForeground(accent)
		focused.Title = focused.Title.Foreground(title).Bold(true)
		focused.Description = focused.Description.Foreground(subtle)
		focused.ErrorIndicator = focused.ErrorIndicator.Foreground(invalid)
		focused.ErrorMessage = focused.ErrorMessage.Foreground(invalid)
		focused.TextInput.Cursor = focused.TextInput.Cursor.Foreground(accent)
		focused.TextInput.Prompt = focused.TextInput.Prompt.Foreground(accent)
		focused.TextInput.Placeholder = focused.TextInput.Placeholder.Foreground(subtle)

		styles.Blurred = styles.Focused
		styles.Blurred.Base = styles.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		styles.Blurred.Title = styles.Blurred.Title.Foreground(subtle).Bold(false)

		return styles
	})
}
