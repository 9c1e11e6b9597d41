package huhforms

import (
	"slices"

	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"
)

// fallbackNewLine keys still insert a newline on terminals that cannot
// report shift+enter.
var fallbackNewLine = []string{"alt+enter", "ctrl+j"}

// NewKeyMap returns huh's default key map with newline bound to the
// configured key plus the fallbacks.
func NewKeyMap(newLine string) *huh.KeyMap {
	keymap := huh.NewDefaultKeyMap()

	keys := slices.Clone(fallbackNewLine)
	if newLine != "" && !slices.Contains(keys, newLine) {
		keys = append([]string{newLine}, keys...)
	}
	keymap.Text.NewLine = key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(keys[0], "new line"),
	)

	return keymap
}
