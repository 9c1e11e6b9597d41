package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/thenoetrevino/quickanswers/internal/config/colors"
)

// toastWidth is the widest a toast message line gets before wrapping
const toastWidth = 48

type style struct {
	icon       string
	title      string
	foreground string
	background string
}

// Palette maps severities to colors.
type Palette struct {
	scheme colors.ColorScheme
}

// NewPalette builds a palette from a color scheme.
func NewPalette(scheme colors.ColorScheme) Palette {
	return Palette{scheme: scheme}
}

func (p Palette) style(s Severity) style {
	switch s {
	case Success:
		return style{icon: "✓", title: "Saved", foreground: p.scheme.SuccessFg, background: p.scheme.SuccessBg}
	case Warning:
		return style{icon: "⚠", title: "Warning", foreground: p.scheme.WarningFg, background: p.scheme.WarningBg}
	case Error:
		return style{icon: "✕", title: "Error", foreground: p.scheme.ErrorFg, background: p.scheme.ErrorBg}
	default:
		return style{icon: "🔔", title: "Info", foreground: p.scheme.InfoFg, background: p.scheme.InfoBg}
	}
}

// Render renders a notification banner based on severity level
func (p Palette) Render(n Notification) string {
	st := p.style(n.Severity)

	headerText := st.icon + " " + st.title
	wrapped := wordwrap.String(n.Message, toastWidth)
	maxWidth := max(lipgloss.Width(headerText), lipgloss.Width(wrapped))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Bold(true).
		Width(maxWidth).
		Render(headerText)

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Width(maxWidth).
		Render(wrapped)

	content := lipgloss.JoinVertical(lipgloss.Left, header, message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(st.background)).
		Background(lipgloss.Color(st.background)).
		Padding(0, 1).
		Render(content)
}

// RenderInline renders a compact single-line notification
func (p Palette) RenderInline(n Notification) string {
	st := p.style(n.Severity)

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(st.foreground)).
		Background(lipgloss.Color(st.background)).
		Padding(0, 1).
		Render(st.icon + " " + n.Message)
}
