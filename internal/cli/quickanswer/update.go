package quickanswer

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/cli/handler"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

// UpdateCmd returns the non-interactive update subcommand
func UpdateCmd(factory cli.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a quick answer without opening the editor",
		Long: `Update the shortcut and/or messages of an existing quick answer.
Giving --message replaces all stored messages; omitting it keeps them.

Examples:
  quickanswers update 12 --shortcut=hello
  quickanswers update 12 --message="Hello there!" --message="Anything else?"
`,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().String("shortcut", "", "New shortcut")
	cmd.Flags().StringArray("message", nil, "Replacement message text, repeatable (use - for stdin)")
	handler.AddOutputFlags(cmd, true)

	var (
		id       types.QuickAnswerID
		messages []string
	)
	cmd.RunE = handler.Command(
		handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			if !args.IsSet("shortcut") && len(messages) == 0 {
				return nil, &cli.UsageError{Err: errNothingToUpdate}
			}
			var shortcut *string
			if args.IsSet("shortcut") {
				s := args.GetString("shortcut", "")
				shortcut = &s
			}
			return withCLI(ctx, factory, func(c *cli.CLI) (any, error) {
				return updateQuickAnswer(ctx, c, id, shortcut, messages)
			})
		}),
		func(cmd *cobra.Command, args []string) error {
			parser := handler.NewFlagParser(cmd)
			var err error
			if id, err = parser.ParseID(args); err != nil {
				return err
			}
			messages, err = parser.ParseMessages("message", false)
			return err
		},
	)

	return cmd
}

// updateQuickAnswer loads the record into an editor, applies the changes and saves.
// A nil shortcut keeps the stored one; an empty one is sent to validation.
func updateQuickAnswer(ctx context.Context, c *cli.CLI, id types.QuickAnswerID, shortcut *string, messages []string) (any, error) {
	ed := editor.New(c.Backend, notifications.Discard)
	ed.Open(ctx, editor.Options{ID: id})
	defer ed.Close()

	if err := ed.Load(ctx); err != nil {
		return nil, err
	}

	if shortcut != nil {
		ed.SetShortcut(*shortcut)
	}
	if len(messages) > 0 {
		for _, key := range ed.Keys() {
			ed.RemoveField(key)
		}
		for _, m := range messages {
			ed.SetMessage(ed.AddField(), m)
		}
	}

	d := ed.Draft()
	if err := ed.Submit(ctx); err != nil {
		return nil, err
	}

	message, err := packed.Encode(d.Entries())
	if err != nil {
		return nil, err
	}
	slog.Info("quick answer updated", "id", id)
	return newRecordView(&models.QuickAnswer{ID: id, Shortcut: d.Shortcut, Message: message})
}
