// Package handler wraps cobra commands so every subcommand reports results
// and failures the same way.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thenoetrevino/quickanswers/internal/cli"
)

// Handler runs a command once its flags are parsed. The returned value is
// handed to the output formatter.
type Handler interface {
	Execute(ctx context.Context, args *Arguments) (any, error)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, args *Arguments) (any, error)

func (f HandlerFunc) Execute(ctx context.Context, args *Arguments) (any, error) {
	return f(ctx, args)
}

// Arguments gives a handler its positional arguments and read access to its flags
type Arguments struct {
	Args  []string
	flags *pflag.FlagSet
}

// Command returns a cobra RunE that runs parseFlags, then handler, and prints
// the result. A parseFlags error is a usage error; every failure is reported
// on stderr and returned as *cli.ExitError.
func Command(handler Handler, parseFlags func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		formatter := Formatter(cmd)

		if err := parseFlags(cmd, args); err != nil {
			return cli.Fail(formatter, &cli.UsageError{Err: err})
		}

		start := time.Now()
		result, err := handler.Execute(ctx, &Arguments{Args: args, flags: cmd.Flags()})
		slog.Debug("command finished", "command", cmd.CommandPath(), "duration", time.Since(start), "error", err)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		return formatter.Success(result)
	}
}

// SimpleCommand is Command without a flag parsing step
func SimpleCommand(handler Handler) func(*cobra.Command, []string) error {
	return Command(handler, func(*cobra.Command, []string) error { return nil })
}

// Formatter builds the output formatter from the --json and --quiet flags,
// writing to the command's streams
func Formatter(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quiet,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

// AddOutputFlags registers --json and, when withQuiet is set, --quiet
func AddOutputFlags(cmd *cobra.Command, withQuiet bool) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	if withQuiet {
		cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
	}
}

// IsSet reports whether a flag was given on the command line
func (a *Arguments) IsSet(name string) bool {
	f := a.flags.Lookup(name)
	return f != nil && f.Changed
}

// GetString returns a flag given on the command line, or defaultVal
func (a *Arguments) GetString(name, defaultVal string) string {
	if !a.IsSet(name) {
		return defaultVal
	}
	v, err := a.flags.GetString(name)
	if err != nil {
		slog.Debug("flag is not a string", "flag", name, "error", err)
		return defaultVal
	}
	return v
}

// GetBool returns a bool flag, false when unset or of another type
func (a *Arguments) GetBool(name string) bool {
	v, err := a.flags.GetBool(name)
	return err == nil && v
}

// GetStringArray returns a repeatable flag given on the command line, or defaultVal
func (a *Arguments) GetStringArray(name string, defaultVal []string) []string {
	if !a.IsSet(name) {
		return defaultVal
	}
	v, err := a.flags.GetStringArray(name)
	if err != nil {
		return defaultVal
	}
	return v
}
