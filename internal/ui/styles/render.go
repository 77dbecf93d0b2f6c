package styles

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/gitstatus/internal/git"
)

// RenderStatus colors a status string with the current theme. The visible
// text is unchanged. Headers that do not have the "## branch...upstream"
// shape are rendered in the branch color as a whole.
func RenderStatus(status string) string {
	return renderStatus(currentTheme, status)
}

func renderStatus(t Theme, status string) string {
	sum := git.ParseSummary(status)
	if sum.Header == "" && sum.Counts == (git.Counts{}) {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderHeader(t, sum))

	counts := sum.Counts
	total := fmt.Sprintf("*:%d", counts.Changed)
	if sum.Clean() {
		b.WriteString(" " + fg(t.Clean).Render(total))
	} else {
		b.WriteString(" " + fg(t.Dirty).Bold(true).Render(total))
	}

	for _, c := range []struct {
		code  string
		n     int
		color color.Color
	}{
		{"?", counts.New, t.New},
		{"A", counts.Added, t.Added},
		{"M", counts.Modified, t.Modified},
		{"D", counts.Deleted, t.Deleted},
		{"R", counts.Renamed, t.Renamed},
	} {
		if c.n > 0 {
			b.WriteString(" " + fg(c.color).Render(fmt.Sprintf("%s:%d", c.code, c.n)))
		}
	}
	return b.String()
}

func renderHeader(t Theme, sum git.Summary) string {
	if sum.Branch == "" {
		return fg(t.Branch).Render(sum.Header)
	}

	plain := "## " + sum.Branch
	out := fg(t.Muted).Render("##") + " " + fg(t.Branch).Bold(true).Render(sum.Branch)
	if sum.Upstream != "" {
		plain += "..." + sum.Upstream
		out += fg(t.Muted).Render("...") + fg(t.Upstream).Render(sum.Upstream)
	}
	if rest, ok := strings.CutPrefix(sum.Header, plain); ok {
		if trimmed := strings.TrimLeft(rest, " "); trimmed != "" {
			out += rest[:len(rest)-len(trimmed)] + fg(t.Divergence).Render(trimmed)
		} else {
			out += rest
		}
		return out
	}
	// Header shape not understood, keep it intact
	return fg(t.Branch).Render(sum.Header)
}

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
