package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ProfileFor resolves a --color mode to the color profile used for output
// written to f.
//
//   - "never" strips all styling
//   - "always" colors even when f is a pipe, which is how shell prompts
//     capture the output; NO_COLOR and TERM are still honored
//   - anything else ("auto") colors only when f is a terminal
func ProfileFor(mode string, f *os.File, environ []string) colorprofile.Profile {
	switch mode {
	case "never":
		return colorprofile.NoTTY
	case "always":
		p := colorprofile.Env(environ)
		if p == colorprofile.NoTTY {
			return colorprofile.ANSI256
		}
		return p
	default:
		if !IsTerminal(f) {
			return colorprofile.NoTTY
		}
		return colorprofile.Detect(f, environ)
	}
}

// Downsample converts styled output to what profile p supports.
// NoTTY removes every escape sequence.
func Downsample(s string, p colorprofile.Profile) string {
	var b strings.Builder
	w := &colorprofile.Writer{Forward: &b, Profile: p}
	if _, err := io.WriteString(w, s); err != nil {
		return s
	}
	return b.String()
}
