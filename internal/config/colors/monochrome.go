package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Create:  "#FFFFFF",
		Edit:    "#BCBCBC",
		Invalid: "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#6C6C6C",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#303030",
		SuccessFg: "#FFFFFF",
		SuccessBg: "#303030",
		WarningFg: "#000000",
		WarningBg: "#BCBCBC",
		ErrorFg:   "#000000",
		ErrorBg:   "#FFFFFF",
	}
}
