package quickanswer

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/cli/handler"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

// ShowCmd returns the show subcommand
func ShowCmd(factory cli.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a quick answer with its messages unpacked",
		Args:  cobra.ExactArgs(1),
	}
	handler.AddOutputFlags(cmd, false)

	var id types.QuickAnswerID
	cmd.RunE = handler.Command(
		handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return withCLI(ctx, factory, func(c *cli.CLI) (any, error) {
				rec, err := c.Backend.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return newRecordView(rec)
			})
		}),
		func(cmd *cobra.Command, args []string) error {
			var err error
			id, err = handler.NewFlagParser(cmd).ParseID(args)
			return err
		},
	)

	return cmd
}

// ListCmd returns the list subcommand
func ListCmd(factory cli.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quick answers",
		Args:  cobra.NoArgs,
	}
	handler.AddOutputFlags(cmd, false)

	cmd.RunE = handler.SimpleCommand(
		handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			return withCLI(ctx, factory, func(c *cli.CLI) (any, error) {
				records, err := c.Backend.List(ctx)
				if err != nil {
					return nil, err
				}
				return newListView(records), nil
			})
		}),
	)

	return cmd
}
