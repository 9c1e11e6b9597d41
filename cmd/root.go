package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/cli/quickanswer"
)

// NewRootCmd builds the command tree. factory builds the context each
// subcommand talks to the backend through.
func NewRootCmd(factory cli.Factory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quickanswers",
		Short: "quickanswers - create and edit canned replies from the terminal",
		Long: `quickanswers manages the quick answers of a customer messaging backend:
a shortcut mapped to one or more canned messages.

Run 'quickanswers new' or 'quickanswers edit <id>' for the interactive editor,
or create/update/show/list for scripting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(quickanswer.Commands(factory)...)
	return rootCmd
}

// Execute runs the CLI. Errors that commands did not already report are
// printed here and treated as usage errors.
func Execute(ctx context.Context) error {
	err := NewRootCmd(cli.NewCLI).ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
	return &cli.ExitError{Code: cli.ExitUsage, Err: err}
}
