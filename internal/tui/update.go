package tui

import (
	"errors"
	"log/slog"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/validation"
)

// Update handles all messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.toastCmds())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toasts.state.SetWindowSize(msg.Width, msg.Height)
		if m.form != nil {
			m.form = m.form.WithWidth(m.formWidth())
		}
		return nil

	case loadedMsg:
		if !m.editor.ApplyLoaded(msg.result) {
			return nil
		}
		return m.rebuildForm()

	case submittedMsg:
		return m.handleSubmitted(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case dismissToastMsg:
		m.toasts.state.DismissOldest()
		return nil

	case tea.KeyPressMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return cmd
		}
		if m.editor.Phase() != editor.Ready {
			return nil
		}
	}

	return m.updateForm(msg)
}

func (m *Model) busy() bool {
	phase := m.editor.Phase()
	return phase == editor.Loading || phase == editor.Submitting
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		return m.cancel(), true

	case key.Matches(msg, m.keys.Save):
		return m.save(), true

	case key.Matches(msg, m.keys.AddField):
		if m.editor.Phase() != editor.Ready {
			return nil, true
		}
		m.syncFromForm()
		if m.editor.AddField() == "" {
			return nil, true
		}
		return m.rebuildForm(), true

	case key.Matches(msg, m.keys.RemoveField):
		if m.editor.Phase() != editor.Ready {
			return nil, true
		}
		focused := m.focusedKey()
		if !packed.IsMessageKey(focused) {
			return nil, true
		}
		m.syncFromForm()
		if !m.editor.RemoveField(focused) {
			return nil, true
		}
		return m.rebuildForm(), true
	}

	return nil, false
}

// updateForm forwards msg to the form and reacts to it finishing.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		return nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	m.syncFromForm()

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.save())
	case huh.StateAborted:
		return m.cancel()
	}
	return cmd
}

// save validates and starts the create or update. It is ignored unless the
// editor is Ready, so a second save never runs while one is in flight.
func (m *Model) save() tea.Cmd {
	if m.editor.Phase() != editor.Ready {
		return nil
	}
	m.syncFromForm()

	run, err := m.editor.PrepareSubmit()
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			slog.Debug("quick answer rejected by validation", "errors", verrs.Error())
		} else {
			slog.Error("failed to prepare quick answer", "error", err)
			m.toasts.Add(notifications.Error, err.Error())
		}
		if m.form.State != huh.StateNormal {
			return m.rebuildForm()
		}
		return nil
	}

	m.toasts.state.ClearSeverity(notifications.Error)
	return tea.Batch(submitCmd(m.ctx, run), m.spinner.Tick)
}

func (m *Model) handleSubmitted(msg submittedMsg) tea.Cmd {
	if !m.editor.ApplySubmitted(msg.result) {
		return nil
	}
	if !m.editor.IsOpen() {
		m.outcome = Saved
		return tea.Quit
	}
	// the save failed; the draft is intact and the form must accept input again
	return m.rebuildForm()
}

func (m *Model) cancel() tea.Cmd {
	m.editor.Close()
	m.outcome = Cancelled
	return tea.Quit
}
