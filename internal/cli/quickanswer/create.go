package quickanswer

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/cli/handler"
	"github.com/thenoetrevino/quickanswers/internal/draft"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
)

// CreateCmd returns the non-interactive create subcommand
func CreateCmd(factory cli.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quick answer without opening the editor",
		Long: `Create a quick answer from flags. Repeat --message to store several
messages under one shortcut; pass "-" to read one message from stdin.

Examples:
  quickanswers create --shortcut=hi --message="Hello there!"

  # Several messages
  quickanswers create --shortcut=bye --message="Thanks for reaching out" --message="Have a nice day!"

  # Quiet mode for bash capture
  ID=$(quickanswers create --shortcut=hi --message=- --quiet < greeting.txt)
`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().String("shortcut", "", "Shortcut (required)")
	cmd.Flags().StringArray("message", nil, "Message text, repeatable (use - for stdin)")
	handler.AddOutputFlags(cmd, true)

	var (
		shortcut string
		messages []string
	)
	cmd.RunE = handler.Command(
		handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return withCLI(ctx, factory, func(c *cli.CLI) (any, error) {
				return createQuickAnswer(ctx, c, shortcut, messages)
			})
		}),
		func(cmd *cobra.Command, args []string) error {
			parser := handler.NewFlagParser(cmd)
			var err error
			if shortcut, err = parser.ParseString("shortcut"); err != nil {
				return err
			}
			messages, err = parser.ParseMessages("message", true)
			return err
		},
	)

	return cmd
}

// createQuickAnswer runs a create through the editor so it gets the same
// validation and packing as the dialog
func createQuickAnswer(ctx context.Context, c *cli.CLI, shortcut string, messages []string) (any, error) {
	var created *models.QuickAnswer
	ed := editor.New(c.Backend, notifications.Discard)
	ed.Open(ctx, editor.Options{
		Initial: draft.FromMessages(shortcut, messages),
		OnSave:  func(rec *models.QuickAnswer) { created = rec },
	})
	defer ed.Close()

	if err := ed.Submit(ctx); err != nil {
		return nil, err
	}

	slog.Info("quick answer created", "id", created.ID, "shortcut", created.Shortcut)
	return newRecordView(created)
}
