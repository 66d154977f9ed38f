package theme

// Theming for the annotator UI. Apply activates the base ttk theme and
// configures the semantic button styles for light or dark mode.

import (
	tk "modernc.org/tk9.0"
)

// Palette holds resolved colors for one mode.
type Palette struct {
	AppBg   string
	Surface string
	Primary string
	Danger  string
	Text    string
}

var (
	light = Palette{AppBg: "#f7f9fb", Surface: "#ffffff", Primary: "#2563eb", Danger: "#dc2626", Text: "#1e293b"}
	dark  = Palette{AppBg: "#0f172a", Surface: "#1e293b", Primary: "#3b82f6", Danger: "#ef4444", Text: "#f1f5f9"}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
)

// internal flag for current mode
var darkMode bool

// PaletteFor returns the colors for the given mode.
func PaletteFor(isDark bool) Palette {
	if isDark {
		return dark
	}
	return light
}

// CurrentPalette returns colors for the active mode.
func CurrentPalette() Palette { return PaletteFor(darkMode) }

// IsDark reports current mode.
func IsDark() bool { return darkMode }

// Apply sets the mode and (re)configures styles.
func Apply(isDark bool) {
	darkMode = isDark
	p := PaletteFor(isDark)
	_ = tk.ActivateTheme("azure light") // baseline metrics
	tk.App.Configure(tk.Background(p.AppBg))
	for style, bg := range map[string]string{StylePrimaryButton: p.Primary, StyleDangerButton: p.Danger} {
		tk.StyleConfigure(style,
			tk.Background(bg),
			tk.Foreground("white"),
			tk.Padding("4p 3p"),
			tk.Borderwidth(1),
			tk.Relief("ridge"),
		)
	}
}
