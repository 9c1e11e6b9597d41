package handler

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

// StdinMarker in place of a flag value or argument means "read standard input"
const StdinMarker = "-"

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseID extracts the quick answer id from the first positional argument
func (p *FlagParser) ParseID(args []string) (types.QuickAnswerID, error) {
	if len(args) == 0 {
		return "", errors.New("quick answer id is required")
	}
	id := types.QuickAnswerID(strings.TrimSpace(args[0]))
	if id.IsZero() {
		return "", errors.New("quick answer id must not be blank")
	}
	return id, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", flagName)
	}
	return value, nil
}

// ParseMessages extracts a repeatable message flag. A single "-" value is
// replaced by standard input.
func (p *FlagParser) ParseMessages(flagName string, required bool) ([]string, error) {
	messages, err := p.cmd.Flags().GetStringArray(flagName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if required && len(messages) == 0 {
		return nil, fmt.Errorf("at least one --%s is required", flagName)
	}

	stdinUsed := false
	for i, m := range messages {
		if m != StdinMarker {
			continue
		}
		if stdinUsed {
			return nil, fmt.Errorf("standard input can only be used for one --%s", flagName)
		}
		stdinUsed = true
		text, err := ReadInput(p.cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		messages[i] = text
	}
	return messages, nil
}

// ReadInput reads r fully and drops one trailing newline
func ReadInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
