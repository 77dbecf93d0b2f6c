// Package static provides non-interactive terminal output components.
package static

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/format"
	"github.com/raphi011/gitstatus/internal/ui/styles"
)

// CacheHeaders are the columns of "gitstatus cache list".
var CacheHeaders = []string{"PROJECT", "UPDATED", "HEAD", "TRACKING", "STATUS"}

// RenderTable creates a borderless table with aligned columns.
// Returns "" when there are no rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	var output strings.Builder
	output.WriteString(t.String())
	output.WriteString("\n")
	return output.String()
}

// CacheTableRow formats one cache entry. Entries without a readable
// record show "invalid" in the status column.
func CacheTableRow(e cache.Entry, now time.Time) []string {
	updated := ""
	if !e.ModTime.IsZero() {
		updated = format.RelativeTimeFrom(e.ModTime, now)
	}

	if e.Record == nil {
		return []string{e.Project, updated, "", "", styles.ErrorStyle.Render("invalid")}
	}
	return []string{
		e.Project,
		updated,
		format.ShortHash(e.Record.HeadRef),
		format.ShortHash(e.Record.TrackingRef),
		styles.RenderStatus(e.Record.Status),
	}
}

// RenderCacheTable renders all entries as a table.
func RenderCacheTable(entries []cache.Entry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, CacheTableRow(e, now))
	}
	return RenderTable(CacheHeaders, rows)
}
