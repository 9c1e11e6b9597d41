// Package launcher runs the editor dialog as a terminal program.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/quickanswers/internal/config"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/tui"
)

// shutdownGrace bounds how long a cancelled launch waits for the program to restore the terminal
const shutdownGrace = 2 * time.Second

// Launch runs the dialog until the user saves or cancels, or ctx is done.
// The returned model reports the outcome; a cancelled ctx is not an error.
func Launch(ctx context.Context, store editor.Store, opts editor.Options, cfg *config.Config, progOpts ...tea.ProgramOption) (*tui.Model, error) {
	model := tui.New(ctx, store, opts, cfg)
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)...)

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return model, fmt.Errorf("error running editor: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, closing editor")
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
			slog.Warn("editor did not stop within the grace period")
		}
	}

	return model, nil
}
