package slack

import (
	"fmt"
	"strings"
	"time"
)

// SearchParams describe a message search: an inclusive [start, end] day
// window plus optional free text, channel and user filters.
type SearchParams struct {
	DateRangeStart string // YYYY-MM-DD
	DateRangeEnd   string // YYYY-MM-DD
	Search         string
	ChannelNames   []string
	UserIDs        []string
}

// beforeAfterClause renders the date window. Slack's before:/after: filters
// exclude the named day itself, so covering the inclusive window [start,
// end] requires before = end + 1 day and after = start - 1 day. The
// arithmetic runs on calendar days, never on raw milliseconds, so DST
// transitions cannot shift the boundary.
func beforeAfterClause(start, end string) (string, error) {
	if start == "" || end == "" {
		return "", nil
	}

	after, err := addDays(start, -1)
	if err != nil {
		return "", fmt.Errorf("date range start: %w", err)
	}
	before, err := addDays(end, 1)
	if err != nil {
		return "", fmt.Errorf("date range end: %w", err)
	}

	return fmt.Sprintf("before:%s after:%s", before, after), nil
}

func addDays(day string, n int) (string, error) {
	if len(day) > 10 {
		day = day[:10]
	}
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", day, err)
	}
	return t.AddDate(0, 0, n).Format("2006-01-02"), nil
}

// BuildSearchQuery assembles the provider's query-string mini-language:
// free text, the before/after window, in:#channel and from:user tokens,
// space-separated with empty parts dropped.
func BuildSearchQuery(p SearchParams) (string, error) {
	window, err := beforeAfterClause(p.DateRangeStart, p.DateRangeEnd)
	if err != nil {
		return "", err
	}

	parts := []string{}
	if p.Search != "" {
		parts = append(parts, p.Search)
	}
	if window != "" {
		parts = append(parts, window)
	}
	for _, name := range p.ChannelNames {
		parts = append(parts, "in:#"+name)
	}
	for _, id := range p.UserIDs {
		parts = append(parts, "from:"+id)
	}

	return strings.Join(parts, " "), nil
}
