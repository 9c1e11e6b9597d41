// Package quickanswer implements the quickanswers subcommands.
package quickanswer

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
)

// Commands returns every subcommand, wired to build their context with factory
func Commands(factory cli.Factory) []*cobra.Command {
	return []*cobra.Command{
		NewCmd(factory),
		EditCmd(factory),
		CreateCmd(factory),
		UpdateCmd(factory),
		ShowCmd(factory),
		ListCmd(factory),
		PackCmd(),
		UnpackCmd(),
		ConfigCmd(),
	}
}

// withCLI builds the CLI context, runs fn and closes it again
func withCLI(ctx context.Context, factory cli.Factory, fn func(*cli.CLI) (any, error)) (any, error) {
	c, err := factory(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close cli", "error", err)
		}
	}()
	return fn(c)
}
