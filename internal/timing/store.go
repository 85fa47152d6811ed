// Package timing reads the local desktop-activity SQLite database and
// aggregates it into raw rows or hourly usage summaries. The database
// (Application/Path/Title/AppActivity tables) is an external contract:
// this package only ever reads it.
package timing

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jharlow/activity-mcp/internal/timeutil"
)

const activityQuery = `
	SELECT
		Title.stringValue AS title,
		Application.title AS app,
		Path.stringValue AS path,
		AppActivity.startDate AS start,
		AppActivity.endDate AS "end"
	FROM AppActivity
	LEFT JOIN Title ON Title.id = AppActivity.titleID
	LEFT JOIN Path ON Path.id = AppActivity.pathID
	LEFT JOIN Application ON Application.id = AppActivity.applicationID
	WHERE AppActivity.isDeleted = 0
		AND AppActivity.startDate >= ?
		AND AppActivity.endDate <= ?
	ORDER BY AppActivity.startDate ASC`

const activityCountQuery = `
	SELECT COUNT(*)
	FROM AppActivity
	WHERE AppActivity.isDeleted = 0
		AND AppActivity.startDate >= ?
		AND AppActivity.endDate <= ?`

const defaultPageLimit = 500

// Store reads the desktop-activity database. Each call opens and closes
// its own connection, so concurrent tool calls share no state.
type Store struct {
	path string
}

// Config holds activity store configuration.
type Config struct {
	Path string // SQLite database file
}

// NewStore creates a store from the TIME_ENTRIES_SQL_PATH environment
// variable. A missing path is a configuration error, not a recoverable
// condition.
func NewStore() (*Store, error) {
	path := os.Getenv("TIME_ENTRIES_SQL_PATH")
	if path == "" {
		return nil, fmt.Errorf("TIME_ENTRIES_SQL_PATH not set")
	}
	return NewStoreWithConfig(Config{Path: path})
}

// NewStoreWithConfig creates a store with explicit configuration.
func NewStoreWithConfig(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("activity database: %w", err)
	}
	return &Store{path: cfg.Path}, nil
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open activity database: %w", err)
	}
	return db, nil
}

// Row is one activity record as stored: local-naive epoch seconds.
type Row struct {
	Title *string
	App   *string
	Path  *string
	Start int64
	End   int64
}

// Activity is the outward shape of a row, with both timestamps corrected
// to UTC ISO-8601 exactly once.
type Activity struct {
	Title *string `json:"title"`
	App   *string `json:"app"`
	Path  *string `json:"path"`
	Start string  `json:"start"`
	End   string  `json:"end"`
}

// ActivityPage is a page of raw activities plus the unbounded total, so
// callers can tell whether further pages exist.
type ActivityPage struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
}

// isoToSeconds converts a query bound to the store's native epoch
// seconds. No timezone correction here: the correction belongs to row
// output, applied once per raw timestamp.
func isoToSeconds(iso string) (int64, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0, fmt.Errorf("parse timestamp %q: %w", iso, err)
	}
	return t.Unix(), nil
}

// Activities returns the raw rows within [start, end], ordered by start
// time ascending, paginated. Pages are 1-based.
func (s *Store) Activities(ctx context.Context, startISO, endISO string, page, limit int) (ActivityPage, error) {
	start, err := isoToSeconds(startISO)
	if err != nil {
		return ActivityPage{}, err
	}
	end, err := isoToSeconds(endISO)
	if err != nil {
		return ActivityPage{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}

	db, err := s.open()
	if err != nil {
		return ActivityPage{}, err
	}
	defer db.Close()

	var total int
	if err := db.QueryRowContext(ctx, activityCountQuery, start, end).Scan(&total); err != nil {
		return ActivityPage{}, fmt.Errorf("count activities: %w", err)
	}

	rows, err := s.queryRows(ctx, db, activityQuery+" LIMIT ? OFFSET ?", start, end, limit, (page-1)*limit)
	if err != nil {
		return ActivityPage{}, err
	}

	result := ActivityPage{
		Activities: make([]Activity, 0, len(rows)),
		Total:      total,
		Page:       page,
		Limit:      limit,
	}
	for _, row := range rows {
		result.Activities = append(result.Activities, Activity{
			Title: row.Title,
			App:   row.App,
			Path:  row.Path,
			Start: timeutil.ISOFromLocalSeconds(row.Start),
			End:   timeutil.ISOFromLocalSeconds(row.End),
		})
	}
	return result, nil
}

// HourlySummary aggregates every row within [start, end] into per-hour
// usage durations.
func (s *Store) HourlySummary(ctx context.Context, startISO, endISO string) (HourlyBreakdown, error) {
	start, err := isoToSeconds(startISO)
	if err != nil {
		return HourlyBreakdown{}, err
	}
	end, err := isoToSeconds(endISO)
	if err != nil {
		return HourlyBreakdown{}, err
	}

	db, err := s.open()
	if err != nil {
		return HourlyBreakdown{}, err
	}
	defer db.Close()

	rows, err := s.queryRows(ctx, db, activityQuery, start, end)
	if err != nil {
		return HourlyBreakdown{}, err
	}

	return Summarize(rows), nil
}

func (s *Store) queryRows(ctx context.Context, db *sql.DB, query string, args ...any) ([]Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Title, &row.App, &row.Path, &row.Start, &row.End); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
