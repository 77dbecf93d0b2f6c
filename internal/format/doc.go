// Package format renders cache metadata for humans.
//
// Ages are shown relative to now ("5m ago", "yesterday") up to a week,
// then as a date. Commit hashes are shortened to seven characters.
package format
