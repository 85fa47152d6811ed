package timing

import (
	"fmt"
	"time"
)

// minimumDurationSeconds suppresses noise from momentary window focus
// changes: an identifier has to accumulate at least this much time within
// an hour to appear in the summary.
const minimumDurationSeconds = 30

// ActivitySummary is an (identifier, human duration) pair, e.g.
// ["Arc - github.com", "1h 30m"].
type ActivitySummary [2]string

// HourlyBreakdown maps "HH:00" labels to the significant activities of
// that hour.
type HourlyBreakdown struct {
	Hours map[string][]ActivitySummary `json:"hours"`
}

// identifier names what the user was doing: the application plus, when
// recorded, its path/context.
func identifier(row Row) string {
	app := "Unknown"
	if row.App != nil {
		app = *row.App
	}
	if row.Path != nil && *row.Path != "" {
		return app + " - " + *row.Path
	}
	return app
}

// hourLabel buckets a row by the wall-clock hour its start timestamp
// encodes.
func hourLabel(startSeconds int64) string {
	return fmt.Sprintf("%02d:00", time.Unix(startSeconds, 0).UTC().Hour())
}

// Summarize buckets rows into their start hour and accumulates seconds
// per identifier, dropping anything under the minimum duration. Hours
// with no surviving identifier are omitted entirely.
func Summarize(rows []Row) HourlyBreakdown {
	type bucket struct {
		order    []string
		duration map[string]int64
	}

	buckets := map[string]*bucket{}
	var hourOrder []string

	for _, row := range rows {
		hour := hourLabel(row.Start)
		b := buckets[hour]
		if b == nil {
			b = &bucket{duration: map[string]int64{}}
			buckets[hour] = b
			hourOrder = append(hourOrder, hour)
		}

		id := identifier(row)
		if _, seen := b.duration[id]; !seen {
			b.order = append(b.order, id)
		}
		b.duration[id] += row.End - row.Start
	}

	summary := HourlyBreakdown{Hours: map[string][]ActivitySummary{}}
	for _, hour := range hourOrder {
		b := buckets[hour]
		var significant []ActivitySummary
		for _, id := range b.order {
			if seconds := b.duration[id]; seconds >= minimumDurationSeconds {
				significant = append(significant, ActivitySummary{id, formatDuration(seconds)})
			}
		}
		if len(significant) > 0 {
			summary.Hours[hour] = significant
		}
	}
	return summary
}

// formatDuration renders seconds as "45s" under a minute, otherwise
// "30m" or "1h 30m".
func formatDuration(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
