package editor

// Phase is the dialog lifecycle state.
type Phase int

const (
	Closed Phase = iota
	Loading
	Ready
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}
