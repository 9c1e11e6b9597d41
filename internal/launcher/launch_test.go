package launcher

import (
	"context"
	"io"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/quickanswers/internal/config"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/testutil"
	"github.com/thenoetrevino/quickanswers/internal/tui"
)

func TestLaunch_CancelledContextIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &testutil.Store{}
	model, err := Launch(ctx, store, editor.Options{}, config.Default(),
		tea.WithInput(nil), tea.WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if outcome, _ := model.Result(); outcome == tui.Saved {
		t.Errorf("outcome = %v, want nothing saved", outcome)
	}
	if len(store.Created) != 0 {
		t.Errorf("created = %+v", store.Created)
	}
}
