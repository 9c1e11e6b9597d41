package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// renderPreview renders a message body as markdown, falling back to the raw
// text when glamour fails. Blank messages render as "".
func renderPreview(message string, width int) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	renderer, err := getRenderer(width)
	if err == nil {
		rendered, err := renderer.Render(message)
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}
	return wordwrap.String(message, max(width, 20))
}
