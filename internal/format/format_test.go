package format

import (
	"testing"
	"time"
)

func TestRelativeTimeFrom(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 31, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-1 * time.Second), "just now"},
		{"future mtime", now.Add(10 * time.Second), "just now"},
		{"seconds ago", now.Add(-30 * time.Second), "30s ago"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-24 * time.Hour), "yesterday"},
		{"2 days ago", now.Add(-48 * time.Hour), "2d ago"},
		{"6 days ago", now.Add(-6 * 24 * time.Hour), "6d ago"},
		{"week or more shows date", now.Add(-7 * 24 * time.Hour), "2026-01-24"},
		{"old date", time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), "2025-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RelativeTimeFrom(tt.t, now); got != tt.want {
				t.Errorf("RelativeTimeFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want string
	}{
		{"0123456789abcdef0123456789abcdef01234567", "0123456"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ShortHash(tt.ref); got != tt.want {
			t.Errorf("ShortHash(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
