package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/thenoetrevino/quickanswers/internal/api"
	"github.com/thenoetrevino/quickanswers/internal/config"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/logging"
	"github.com/thenoetrevino/quickanswers/internal/models"
)

// Backend is everything the commands need from the quick answers service
type Backend interface {
	editor.Store
	List(ctx context.Context) ([]models.QuickAnswer, error)
}

// CLI represents the CLI application context
type CLI struct {
	Config  *config.Config
	Backend Backend

	logCloser io.Closer
}

// Factory builds the CLI context for a command run
type Factory func(ctx context.Context) (*CLI, error)

// NewCLI loads the configuration, opens the log file and connects the API client
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	closer, err := logging.Init(cfg.Log)
	if err != nil {
		// Logging is best effort; commands still work without a log file
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		closer = nil
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithToken(cfg.API.Token),
		api.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
	)
	slog.Debug("cli initialized", "base_url", cfg.API.BaseURL)

	return &CLI{Config: cfg, Backend: client, logCloser: closer}, nil
}

// NewWithBackend builds a CLI context around an existing backend
func NewWithBackend(cfg *config.Config, backend Backend) *CLI {
	if cfg == nil {
		cfg = config.Default()
	}
	return &CLI{Config: cfg, Backend: backend}
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.logCloser == nil {
		return nil
	}
	return c.logCloser.Close()
}

// IsTerminal reports whether stdin and stdout are both terminals.
// Tests replace it.
var IsTerminal = func() bool {
	return isTTY(os.Stdin) && isTTY(os.Stdout)
}

func isTTY(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
