package styles

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors of a rendered status
type Theme struct {
	Branch     color.Color // branch name
	Upstream   color.Color // "...origin/main"
	Divergence color.Color // "[ahead 1, behind 2]"
	Clean      color.Color // "*:0"
	Dirty      color.Color // "*:n" for n > 0
	New        color.Color // ?
	Added      color.Color // A
	Modified   color.Color // M
	Deleted    color.Color // D
	Renamed    color.Color // R
	Muted      color.Color // separators and table chrome
}

// Preset themes
var (
	// DefaultTheme uses the 256-color palette
	DefaultTheme = Theme{
		Branch:     lipgloss.Color("62"),  // cyan/teal
		Upstream:   lipgloss.Color("244"), // gray
		Divergence: lipgloss.Color("214"), // orange
		Clean:      lipgloss.Color("82"),  // green
		Dirty:      lipgloss.Color("212"), // pink
		New:        lipgloss.Color("244"), // gray
		Added:      lipgloss.Color("82"),  // green
		Modified:   lipgloss.Color("214"), // orange
		Deleted:    lipgloss.Color("196"), // red
		Renamed:    lipgloss.Color("81"),  // blue
		Muted:      lipgloss.Color("240"), // dark gray
	}

	// NordTheme is based on the Nord color scheme
	NordTheme = Theme{
		Branch:     lipgloss.Color("#88c0d0"), // nord8 (frost cyan)
		Upstream:   lipgloss.Color("#4c566a"), // nord3 (polar night)
		Divergence: lipgloss.Color("#ebcb8b"), // nord13 (aurora yellow)
		Clean:      lipgloss.Color("#a3be8c"), // nord14 (aurora green)
		Dirty:      lipgloss.Color("#b48ead"), // nord15 (aurora purple)
		New:        lipgloss.Color("#d8dee9"), // nord4
		Added:      lipgloss.Color("#a3be8c"), // nord14
		Modified:   lipgloss.Color("#d08770"), // nord12 (aurora orange)
		Deleted:    lipgloss.Color("#bf616a"), // nord11 (aurora red)
		Renamed:    lipgloss.Color("#81a1c1"), // nord9 (frost blue)
		Muted:      lipgloss.Color("#4c566a"), // nord3
	}

	// DraculaTheme is based on the Dracula color scheme
	DraculaTheme = Theme{
		Branch:     lipgloss.Color("#bd93f9"), // purple
		Upstream:   lipgloss.Color("#6272a4"), // comment
		Divergence: lipgloss.Color("#ffb86c"), // orange
		Clean:      lipgloss.Color("#50fa7b"), // green
		Dirty:      lipgloss.Color("#ff79c6"), // pink
		New:        lipgloss.Color("#f8f8f2"), // foreground
		Added:      lipgloss.Color("#50fa7b"), // green
		Modified:   lipgloss.Color("#f1fa8c"), // yellow
		Deleted:    lipgloss.Color("#ff5555"), // red
		Renamed:    lipgloss.Color("#8be9fd"), // cyan
		Muted:      lipgloss.Color("#6272a4"), // comment
	}

	// NoneTheme renders without colors. Bold is preserved.
	NoneTheme = Theme{
		Branch:     lipgloss.NoColor{},
		Upstream:   lipgloss.NoColor{},
		Divergence: lipgloss.NoColor{},
		Clean:      lipgloss.NoColor{},
		Dirty:      lipgloss.NoColor{},
		New:        lipgloss.NoColor{},
		Added:      lipgloss.NoColor{},
		Modified:   lipgloss.NoColor{},
		Deleted:    lipgloss.NoColor{},
		Renamed:    lipgloss.NoColor{},
		Muted:      lipgloss.NoColor{},
	}
)

var presets = map[string]*Theme{
	"default": &DefaultTheme,
	"nord":    &NordTheme,
	"dracula": &DraculaTheme,
	"none":    &NoneTheme,
}

// currentTheme holds the active theme
var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init activates the named preset and rebuilds the shared styles.
// An unknown name falls back to the default theme with a warning.
func Init(name string) {
	theme, ok := presets[name]
	if !ok {
		if name != "" {
			fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using default (available: %s)\n",
				name, strings.Join(PresetNames(), ", "))
		}
		theme = &DefaultTheme
	}
	currentTheme = *theme
	applyTheme(currentTheme)
}

// GetPreset returns a theme preset by name, or nil if not found
func GetPreset(name string) *Theme {
	return presets[name]
}

// PresetNames returns the available preset names, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// applyTheme updates the shared style variables to use the given theme
func applyTheme(t Theme) {
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Branch)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	ErrorStyle = lipgloss.NewStyle().Foreground(t.Deleted)
	SuccessStyle = lipgloss.NewStyle().Foreground(t.Clean)
}
