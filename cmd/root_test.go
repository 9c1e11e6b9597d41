package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/testutil"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd(func(ctx context.Context) (*cli.CLI, error) {
		t.Error("factory must not run for help output")
		return nil, nil
	})

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"new", "edit", "create", "update", "show", "list", "pack", "unpack", "config"} {
		assert.Contains(t, names, want)
	}

	out, _, err := testutil.ExecuteCommand(t, root, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "quick answers")
}
