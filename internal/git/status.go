package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StatusCommand computes the status summary by running git.
type StatusCommand struct {
	Binary string // executable, DefaultBinary if empty
}

// Status runs "git -C <root> --no-optional-locks status --porcelain --branch"
// and summarizes its output. A failing command returns the error and an
// empty status.
//
// --no-optional-locks keeps git from rewriting .git/index to refresh its
// stat cache; the index mtime recorded alongside the status must still
// match on the next prompt.
func (c StatusCommand) Status(ctx context.Context, root string) (string, error) {
	out, err := outputGit(ctx, c.Binary, root, "--no-optional-locks", "status", "--porcelain", "--branch")
	if err != nil {
		return "", fmt.Errorf("git status failed: %w", err)
	}
	return Summarize(string(out)), nil
}

// Counts holds per-category counts of changed paths.
type Counts struct {
	Changed  int // all changed paths, including uncategorized codes
	New      int // ??
	Added    int // A
	Modified int // M
	Deleted  int // D
	Renamed  int // R
}

// Add classifies one porcelain line and counts it. Leading whitespace is
// ignored, so " M file" counts as modified. The first matching category wins.
func (c *Counts) Add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.Changed++
	switch {
	case strings.HasPrefix(line, "??"):
		c.New++
	case strings.HasPrefix(line, "A"):
		c.Added++
	case strings.HasPrefix(line, "M"):
		c.Modified++
	case strings.HasPrefix(line, "D"):
		c.Deleted++
	case strings.HasPrefix(line, "R"):
		c.Renamed++
	}
}

// String formats the counts as " *:<changed>" followed by one " <code>:<n>"
// token per non-zero category in the order ?, A, M, D, R.
func (c Counts) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, " *:%d", c.Changed)
	for _, cat := range c.categories() {
		if cat.n > 0 {
			fmt.Fprintf(&b, " %s:%d", cat.code, cat.n)
		}
	}
	return b.String()
}

type category struct {
	code string
	n    int
}

func (c Counts) categories() []category {
	return []category{
		{"?", c.New},
		{"A", c.Added},
		{"M", c.Modified},
		{"D", c.Deleted},
		{"R", c.Renamed},
	}
}

// Summarize converts "git status --porcelain --branch" output to the compact
// prompt form. The first line (branch header) is kept verbatim.
// Empty output yields "".
func Summarize(output string) string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	if strings.TrimSpace(output) == "" {
		return ""
	}

	lines := strings.Split(output, "\n")
	header := lines[0]

	var counts Counts
	for _, line := range lines[1:] {
		counts.Add(line)
	}
	return header + counts.String()
}

// Summary is a status string split back into its parts.
type Summary struct {
	Header   string // "## main...origin/main [ahead 1]"
	Branch   string // "main"
	Upstream string // "origin/main", "" without upstream
	Ahead    int
	Behind   int
	Counts   Counts
}

// Clean reports whether no changed paths were counted.
func (s Summary) Clean() bool {
	return s.Counts.Changed == 0
}

// String reassembles the status string.
func (s Summary) String() string {
	if s.Header == "" && s.Counts == (Counts{}) {
		return ""
	}
	return s.Header + s.Counts.String()
}

var (
	countToken  = regexp.MustCompile(`^([*?AMDR]):(\d+)$`)
	aheadBehind = regexp.MustCompile(`\[(?:ahead (\d+))?(?:, )?(?:behind (\d+))?\]$`)
)

// ParseSummary parses a string produced by Summarize. Strings without count
// tokens are treated as a bare header.
func ParseSummary(status string) Summary {
	var s Summary
	if status == "" {
		return s
	}

	header := status
	if idx := strings.LastIndex(status, " *:"); idx >= 0 {
		header = status[:idx]
		for _, tok := range strings.Fields(status[idx:]) {
			m := countToken.FindStringSubmatch(tok)
			if m == nil {
				continue
			}
			n, _ := strconv.Atoi(m[2])
			switch m[1] {
			case "*":
				s.Counts.Changed = n
			case "?":
				s.Counts.New = n
			case "A":
				s.Counts.Added = n
			case "M":
				s.Counts.Modified = n
			case "D":
				s.Counts.Deleted = n
			case "R":
				s.Counts.Renamed = n
			}
		}
	}

	s.Header = header
	s.Branch, s.Upstream, s.Ahead, s.Behind = parseHeader(header)
	return s
}

// parseHeader extracts branch, upstream and divergence from a porcelain
// branch header such as "## main...origin/main [ahead 1, behind 2]".
func parseHeader(header string) (branch, upstream string, ahead, behind int) {
	rest, ok := strings.CutPrefix(header, "## ")
	if !ok {
		return "", "", 0, 0
	}

	if m := aheadBehind.FindStringSubmatch(rest); m != nil {
		ahead, _ = strconv.Atoi(m[1])
		behind, _ = strconv.Atoi(m[2])
		rest = strings.TrimSpace(strings.TrimSuffix(rest, m[0]))
	}

	branch, upstream, _ = strings.Cut(rest, "...")
	return branch, upstream, ahead, behind
}
