package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for focus, titles, highlights)
	Accent string `yaml:"accent"`

	// Dialog border colors
	Create string `yaml:"create"` // new quick answer
	Edit   string `yaml:"edit"`   // existing quick answer

	// Field validation errors
	Invalid string `yaml:"invalid"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	SuccessFg string `yaml:"success_fg"`
	SuccessBg string `yaml:"success_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	c.fill(preset, false)
}

// MergeFrom overrides colors with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	c.fill(&other, true)
}

func (c *ColorScheme) fill(src *ColorScheme, override bool) {
	pairs := []struct {
		dst *string
		src string
	}{
		{&c.Accent, src.Accent},
		{&c.Create, src.Create},
		{&c.Edit, src.Edit},
		{&c.Invalid, src.Invalid},
		{&c.Title, src.Title},
		{&c.Subtle, src.Subtle},
		{&c.InfoFg, src.InfoFg},
		{&c.InfoBg, src.InfoBg},
		{&c.SuccessFg, src.SuccessFg},
		{&c.SuccessBg, src.SuccessBg},
		{&c.WarningFg, src.WarningFg},
		{&c.WarningBg, src.WarningBg},
		{&c.ErrorFg, src.ErrorFg},
		{&c.ErrorBg, src.ErrorBg},
	}
	for _, p := range pairs {
		if p.src == "" {
			continue
		}
		if override || *p.dst == "" {
			*p.dst = p.src
		}
	}
}
