package config

// KeyMappings defines the configurable key bindings of the editor dialog
type KeyMappings struct {
	AddField    string `yaml:"add_field"`
	RemoveField string `yaml:"remove_field"`
	SaveForm    string `yaml:"save_form"`
	Cancel      string `yaml:"cancel"`
	Quit        string `yaml:"quit"`
	NewLine     string `yaml:"new_line"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddField:    "ctrl+n",
		RemoveField: "ctrl+d",
		SaveForm:    "ctrl+s",
		Cancel:      "esc",
		Quit:        "ctrl+c",
		NewLine:     "shift+enter",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.AddField == "" {
		k.AddField = defaults.AddField
	}
	if k.RemoveField == "" {
		k.RemoveField = defaults.RemoveField
	}
	if k.SaveForm == "" {
		k.SaveForm = defaults.SaveForm
	}
	if k.Cancel == "" {
		k.Cancel = defaults.Cancel
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
	if k.NewLine == "" {
		k.NewLine = defaults.NewLine
	}
}
