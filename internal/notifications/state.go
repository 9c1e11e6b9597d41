package notifications

import "charm.land/lipgloss/v2"

// Notification represents a single notification message with a severity level.
type Notification struct {
	Severity Severity
	Message  string
}

// State is the queue of toasts currently shown by the dialog.
type State struct {
	notifications []Notification
	// limit caps the queue; the oldest toast is dropped first
	limit int

	windowWidth  int
	windowHeight int
}

// NewState creates a State holding at most limit notifications (0 = unbounded).
func NewState(limit int) *State {
	return &State{
		notifications: []Notification{},
		limit:         limit,
	}
}

// Add adds a new notification. It implements Notifier.
func (s *State) Add(severity Severity, message string) {
	s.notifications = append(s.notifications, Notification{
		Severity: severity,
		Message:  message,
	})
	if s.limit > 0 && len(s.notifications) > s.limit {
		s.notifications = s.notifications[len(s.notifications)-s.limit:]
	}
}

// ClearSeverity removes all notifications of a specific severity.
func (s *State) ClearSeverity(severity Severity) {
	filtered := []Notification{}
	for _, n := range s.notifications {
		if n.Severity != severity {
			filtered = append(filtered, n)
		}
	}
	s.notifications = filtered
}

// DismissOldest drops the oldest notification, if any.
func (s *State) DismissOldest() {
	if len(s.notifications) > 0 {
		s.notifications = s.notifications[1:]
	}
}

// All returns all current notifications, oldest first.
func (s *State) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *State) HasAny() bool {
	return len(s.notifications) > 0
}

// Last returns the newest notification.
func (s *State) Last() (Notification, bool) {
	if len(s.notifications) == 0 {
		return Notification{}, false
	}
	return s.notifications[len(s.notifications)-1], true
}

// SetWindowSize updates the window dimensions for positioning calculations.
func (s *State) SetWindowSize(width, height int) {
	s.windowWidth = width
	s.windowHeight = height
}

// GetLayers creates floating layers for all active notifications.
// Notifications are stacked vertically in the top-right corner of the screen.
func (s *State) GetLayers(renderFunc func(Notification) string) []*lipgloss.Layer {
	layers := []*lipgloss.Layer{}

	// If window dimensions not set, can't position properly
	if s.windowWidth == 0 {
		return layers
	}

	row := 0
	for _, notification := range s.notifications {
		view := renderFunc(notification)
		width := lipgloss.Width(view)
		height := lipgloss.Height(view)

		col := max(s.windowWidth-width-1, 0)
		if row+height >= s.windowHeight {
			// Don't render notifications that would go off screen
			break
		}

		layers = append(layers, lipgloss.NewLayer(view).X(col).Y(row))
		row += height + 1
	}

	return layers
}
