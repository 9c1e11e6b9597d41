package quickanswer

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/cli/handler"
	"github.com/thenoetrevino/quickanswers/internal/draft"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/launcher"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
	"github.com/thenoetrevino/quickanswers/internal/tui"
)

// NewCmd returns the new subcommand, which opens the editor dialog for a new quick answer
func NewCmd(factory cli.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Open the editor to create a quick answer",
		Long: `Open the editor dialog to create a quick answer. --shortcut and --message
prefill the form.

Keys:
  ctrl+n  add a message      ctrl+d  remove the focused message
  ctrl+s  save               esc     cancel
`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().String("shortcut", "", "Initial shortcut")
	cmd.Flags().StringArray("message", nil, "Initial message text, repeatable")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		formatter := handler.Formatter(cmd)
		shortcut, _ := cmd.Flags().GetString("shortcut")
		messages, err := handler.NewFlagParser(cmd).ParseMessages("message", false)
		if err != nil {
			return cli.Fail(formatter, &cli.UsageError{Err: err})
		}

		opts := editor.Options{Initial: draft.FromMessages(shortcut, messages)}
		return runDialog(cmd, factory, opts)
	}

	return cmd
}

// EditCmd returns the edit subcommand, which opens the editor dialog for an existing quick answer
func EditCmd(factory cli.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Open the editor for an existing quick answer",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := handler.NewFlagParser(cmd).ParseID(args)
		if err != nil {
			return cli.Fail(handler.Formatter(cmd), &cli.UsageError{Err: err})
		}
		return runDialog(cmd, factory, editor.Options{ID: id})
	}

	return cmd
}

// runDialog runs the editor dialog and reports its outcome on stderr
func runDialog(cmd *cobra.Command, factory cli.Factory, opts editor.Options) error {
	formatter := handler.Formatter(cmd)
	if !cli.IsTerminal() {
		return cli.Fail(formatter, cli.ErrNotATerminal)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, err := withCLI(ctx, factory, func(c *cli.CLI) (any, error) {
		model, err := launcher.Launch(ctx, c.Backend, opts, c.Config)
		if err != nil {
			return nil, err
		}

		outcome, created := model.Result()
		writer := notifications.NewWriter(cmd.ErrOrStderr())
		switch outcome {
		case tui.Saved:
			if last, ok := model.Notifications().Last(); ok {
				writer.Add(last.Severity, last.Message)
			}
			if created != nil {
				fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			}
		default:
			writer.Add(notifications.Info, "Cancelled, nothing saved")
		}
		return nil, nil
	})
	if err != nil {
		return cli.Fail(formatter, err)
	}
	return nil
}
