package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thenoetrevino/quickanswers/internal/api"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/validation"
)

// ErrNotATerminal is returned by interactive commands run without a terminal
var ErrNotATerminal = errors.New("this command needs an interactive terminal")

// UsageError marks an error caused by how the command was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Fail reports err through the formatter and returns an *ExitError with the
// matching exit code.
func Fail(f *OutputFormatter, err error) error {
	code, exit, suggestion := classify(err)

	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestion); fmtErr != nil {
		slog.Error("failed to write error message", "error", fmtErr)
	}
	return &ExitError{Code: exit, Err: err}
}

func classify(err error) (code string, exit int, suggestion string) {
	var (
		verrs     validation.Errors
		usageErr  *UsageError
		statusErr *api.StatusError
	)

	switch {
	case errors.As(err, &verrs):
		return "VALIDATION_ERROR", ExitValidation,
			"Shortcuts need 2-15 characters and the first message 8-30000; messages cannot contain \"/:/\" or \"/*/\""
	case errors.Is(err, models.ErrNotFound):
		return "NOT_FOUND", ExitNotFound, "Use 'quickanswers list' to see available quick answers"
	case errors.Is(err, ErrNotATerminal):
		return "NOT_A_TERMINAL", ExitUsage, "Use 'quickanswers create' or 'quickanswers update' in scripts"
	case errors.As(err, &usageErr), errors.Is(err, models.ErrMissingID):
		return "USAGE_ERROR", ExitUsage, ""
	case errors.Is(err, packed.ErrMalformed):
		return "MALFORMED_MESSAGE", ExitDataErr, ""
	case errors.Is(err, packed.ErrReservedDelimiter), errors.Is(err, packed.ErrInvalidKey), errors.Is(err, packed.ErrNoEntries):
		return "INVALID_MESSAGE", ExitValidation, ""
	case errors.Is(err, editor.ErrBusy):
		return "BUSY", ExitError, ""
	case errors.As(err, &statusErr):
		return "API_ERROR", ExitError, ""
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT", ExitError, "Raise api.timeout_seconds in the config file"
	default:
		return "ERROR", ExitError, ""
	}
}
