// Package notifications carries the short user-facing messages the editor
// raises: success on save, warnings for refused actions, errors for failed
// requests. None of them is fatal.
package notifications

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Add(severity Severity, message string)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Add(Severity, string) {}
