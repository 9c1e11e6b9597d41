package notifications

import (
	"fmt"
	"io"
	"log/slog"
)

// Writer prints notifications line by line, for commands that run without the dialog.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Add implements Notifier.
func (n *Writer) Add(severity Severity, message string) {
	prefix := map[Severity]string{
		Info:    "🔔",
		Success: "✅",
		Warning: "⚠️ ",
		Error:   "❌ Error:",
	}[severity]

	if _, err := fmt.Fprintf(n.w, "%s %s\n", prefix, message); err != nil {
		slog.Error("failed to write notification", "error", err)
	}
}
