package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/quickanswers/internal/editor"
)

// loadedMsg carries the result of fetching the record being edited
type loadedMsg struct {
	result editor.LoadResult
}

// submittedMsg carries the result of a create or update
type submittedMsg struct {
	result editor.SubmitResult
}

// dismissToastMsg drops the oldest toast
type dismissToastMsg struct{}

func (m *Model) fetchCmd() tea.Cmd {
	fetch, err := m.editor.Fetch()
	if err != nil {
		slog.Error("failed to start loading quick answer", "error", err)
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{result: fetch(ctx)}
	}
}

func submitCmd(ctx context.Context, save func(context.Context) editor.SubmitResult) tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{result: save(ctx)}
	}
}

// toastCmds schedules the dismissal of toasts added since the last call
func (m *Model) toastCmds() tea.Cmd {
	if m.toasts.added == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, m.toasts.added)
	for range m.toasts.added {
		cmds = append(cmds, tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
			return dismissToastMsg{}
		}))
	}
	m.toasts.added = 0
	return tea.Batch(cmds...)
}
