package quickanswer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/cli/handler"
	"github.com/thenoetrevino/quickanswers/internal/config"
)

// configView is the config command output
type configView struct {
	Path    string `json:"path"`
	Written bool   `json:"written"`
}

func (c configView) Human() string {
	if c.Written {
		return "Wrote default config to " + c.Path
	}
	return c.Path
}

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
	}
	handler.AddOutputFlags(path, false)
	path.RunE = handler.SimpleCommand(handler.HandlerFunc(
		func(ctx context.Context, args *handler.Arguments) (any, error) {
			p, err := config.Path()
			if err != nil {
				return nil, err
			}
			return configView{Path: p}, nil
		}))

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	handler.AddOutputFlags(initCmd, false)
	initCmd.RunE = handler.SimpleCommand(handler.HandlerFunc(
		func(ctx context.Context, args *handler.Arguments) (any, error) {
			p, err := config.Path()
			if err != nil {
				return nil, err
			}
			if _, err := os.Stat(p); err == nil && !args.GetBool("force") {
				return nil, &cli.UsageError{Err: fmt.Errorf("%s already exists (use --force to overwrite)", p)}
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			if err := config.Default().Save(); err != nil {
				return nil, fmt.Errorf("failed to write config: %w", err)
			}
			return configView{Path: p, Written: true}, nil
		}))

	cmd.AddCommand(path, initCmd)
	return cmd
}
