package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/tui/layers"
)

// View renders the dialog centered on screen with toasts in the top-right corner.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	stack := []*lipgloss.Layer{lipgloss.NewLayer(strings.Repeat("\n", max(m.height-1, 0)))}
	if dialog := layers.CreateCenteredLayer(m.renderDialog(), m.width, m.height); dialog != nil {
		stack = append(stack, dialog)
	}
	stack = append(stack, m.toasts.state.GetLayers(m.palette.Render)...)

	view.Content = lipgloss.NewCanvas(stack...).Render()
	return view
}

func (m *Model) dialogWidth() int {
	return layers.DialogWidth(m.width, maxDialogWidth)
}

func (m *Model) renderDialog() string {
	scheme := m.cfg.ColorScheme
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle))

	var sections []string
	switch m.editor.Phase() {
	case editor.Loading:
		sections = append(sections, m.spinner.View()+" Loading quick answer...")
	default:
		if m.form != nil {
			sections = append(sections, m.form.View())
		}
		if errs := m.renderErrors(); errs != "" {
			sections = append(sections, errs)
		}
		if preview := m.renderFocusedPreview(); preview != "" {
			sections = append(sections, subtle.Render("Preview"), preview)
		}
		if m.editor.Phase() == editor.Submitting {
			sections = append(sections, m.spinner.View()+" Saving...")
		}
	}
	sections = append(sections, subtle.Render(m.helpLine()))

	border := scheme.Create
	if m.editor.EditMode() {
		border = scheme.Edit
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(m.dialogWidth()).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderErrors lists the field errors of the last rejected save
func (m *Model) renderErrors() string {
	errs := m.editor.Errors()
	if len(errs) == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.ColorScheme.Invalid))
	lines := make([]string, 0, len(errs))
	for _, fe := range errs {
		lines = append(lines, style.Render("✕ "+fe.Field+": "+fe.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFocusedPreview() string {
	focused := m.focusedKey()
	if !packed.IsMessageKey(focused) {
		return ""
	}
	for _, f := range m.messages {
		if f.Key == focused {
			return renderPreview(*f.Value, m.formWidth())
		}
	}
	return ""
}

func (m *Model) helpLine() string {
	bindings := []string{
		m.keys.AddField.Help().Key + " " + m.keys.AddField.Help().Desc,
		m.keys.RemoveField.Help().Key + " " + m.keys.RemoveField.Help().Desc,
		m.keys.Save.Help().Key + " " + m.keys.Save.Help().Desc,
		m.keys.Cancel.Help().Key + " " + m.keys.Cancel.Help().Desc,
		m.cfg.KeyMappings.NewLine + " new line",
	}
	return strings.Join(bindings, " • ")
}
