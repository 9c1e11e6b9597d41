package quickanswer

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli/handler"
	"github.com/thenoetrevino/quickanswers/internal/draft"
	"github.com/thenoetrevino/quickanswers/internal/packed"
)

// PackCmd returns the pack subcommand, which prints the stored form of messages
func PackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack messages into the stored message format",
		Long: `Pack one or more messages into the single string the backend stores.

Example:
  quickanswers pack --message=Hi --message=Bye
  # message/:/message1/*/Hi/:/Bye
`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().StringArray("message", nil, "Message text, repeatable (use - for stdin)")
	handler.AddOutputFlags(cmd, false)

	var messages []string
	cmd.RunE = handler.Command(
		handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			message, err := packed.Encode(draft.FromMessages("", messages).Entries())
			if err != nil {
				return nil, err
			}
			return packedView{Message: message}, nil
		}),
		func(cmd *cobra.Command, args []string) error {
			var err error
			messages, err = handler.NewFlagParser(cmd).ParseMessages("message", true)
			return err
		},
	)

	return cmd
}

// UnpackCmd returns the unpack subcommand
func UnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack [packed|-]",
		Short: "Unpack a stored message string into its messages",
		Long: `Unpack a stored message string. Without an argument, or with "-",
the string is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
	}
	handler.AddOutputFlags(cmd, false)

	var input string
	cmd.RunE = handler.Command(
		handler.HandlerFunc(func(ctx context.Context, args *handler.Arguments) (any, error) {
			entries, err := packed.Decode(input)
			if err != nil {
				return nil, err
			}
			return entriesView{Messages: entries}, nil
		}),
		func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] != handler.StdinMarker {
				input = args[0]
				return nil
			}
			text, err := handler.ReadInput(cmd.InOrStdin())
			if err != nil {
				return err
			}
			input = strings.TrimRight(text, "\r\n")
			return nil
		},
	)

	return cmd
}
