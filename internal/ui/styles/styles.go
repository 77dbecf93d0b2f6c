// Package styles provides the colors and lipgloss styles used to render
// status strings and cache listings.
//
// Rendering always produces full-color output; the caller's color profile
// then downgrades or strips it, so "--color never" yields the exact plain
// status string.
package styles

import "charm.land/lipgloss/v2"

// Shared styles, rebuilt by Init
var (
	// HeaderStyle is used for table headers
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(DefaultTheme.Branch)

	// MutedStyle is used for secondary text
	MutedStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Muted)

	// ErrorStyle is used for malformed entries
	ErrorStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Deleted)

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().Foreground(DefaultTheme.Clean)
)
