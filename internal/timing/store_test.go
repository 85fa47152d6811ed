package timing

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jharlow/activity-mcp/internal/timeutil"
)

const testSchema = `
	CREATE TABLE Application (id INTEGER PRIMARY KEY, title TEXT);
	CREATE TABLE Path (id INTEGER PRIMARY KEY, stringValue TEXT);
	CREATE TABLE Title (id INTEGER PRIMARY KEY, stringValue TEXT);
	CREATE TABLE AppActivity (
		id INTEGER PRIMARY KEY,
		applicationID INTEGER,
		pathID INTEGER,
		titleID INTEGER,
		startDate INTEGER,
		endDate INTEGER,
		isDeleted INTEGER DEFAULT 0
	);`

func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entries.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO Application (id, title) VALUES (1, 'Arc'), (2, 'Slack')`); err != nil {
		t.Fatalf("seed applications: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO Path (id, stringValue) VALUES (1, 'github.com')`); err != nil {
		t.Fatalf("seed paths: %v", err)
	}

	base := time.Date(2025, 7, 22, 9, 0, 0, 0, time.UTC).Unix()
	rows := []struct {
		app, path  any
		start, end int64
		deleted    int
	}{
		{1, 1, base, base + 600, 0},
		{2, nil, base + 600, base + 1200, 0},
		{1, nil, base + 1200, base + 1800, 0},
		{2, nil, base + 1800, base + 2400, 1}, // deleted, must never surface
		{1, nil, base + 90000, base + 90060, 0}, // next day, outside window
	}
	for _, row := range rows {
		if _, err := db.Exec(
			`INSERT INTO AppActivity (applicationID, pathID, startDate, endDate, isDeleted) VALUES (?, ?, ?, ?, ?)`,
			row.app, row.path, row.start, row.end, row.deleted,
		); err != nil {
			t.Fatalf("seed activity: %v", err)
		}
	}

	return path
}

func testWindow() (string, string) {
	start := time.Date(2025, 7, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 23, 0, 0, 0, 0, time.UTC)
	return start.Format(time.RFC3339), end.Format(time.RFC3339)
}

func TestActivities_PaginatesWithTotal(t *testing.T) {
	store, err := NewStoreWithConfig(Config{Path: newTestDB(t)})
	if err != nil {
		t.Fatalf("NewStoreWithConfig: %v", err)
	}

	startISO, endISO := testWindow()

	page, err := store.Activities(context.Background(), startISO, endISO, 1, 2)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}

	if page.Total != 3 {
		t.Errorf("total = %d, want 3 (deleted and out-of-window rows excluded)", page.Total)
	}
	if len(page.Activities) != 2 {
		t.Errorf("got %d rows, want page of 2", len(page.Activities))
	}

	second, err := store.Activities(context.Background(), startISO, endISO, 2, 2)
	if err != nil {
		t.Fatalf("Activities page 2: %v", err)
	}
	if len(second.Activities) != 1 {
		t.Errorf("page 2 has %d rows, want 1", len(second.Activities))
	}
	if second.Total != 3 {
		t.Errorf("page 2 total = %d, want 3", second.Total)
	}
}

func TestActivities_RowsOrderedAndConverted(t *testing.T) {
	store, err := NewStoreWithConfig(Config{Path: newTestDB(t)})
	if err != nil {
		t.Fatalf("NewStoreWithConfig: %v", err)
	}

	startISO, endISO := testWindow()

	page, err := store.Activities(context.Background(), startISO, endISO, 1, 10)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}

	first := page.Activities[0]
	if first.App == nil || *first.App != "Arc" {
		t.Errorf("first app = %v, want Arc", first.App)
	}
	if first.Path == nil || *first.Path != "github.com" {
		t.Errorf("first path = %v, want github.com", first.Path)
	}

	base := time.Date(2025, 7, 22, 9, 0, 0, 0, time.UTC).Unix()
	if want := timeutil.ISOFromLocalSeconds(base); first.Start != want {
		t.Errorf("start = %q, want %q (offset applied once)", first.Start, want)
	}

	for i := 1; i < len(page.Activities); i++ {
		if page.Activities[i].Start < page.Activities[i-1].Start {
			t.Fatal("rows not ordered by start time")
		}
	}
}

func TestHourlySummary_EndToEnd(t *testing.T) {
	store, err := NewStoreWithConfig(Config{Path: newTestDB(t)})
	if err != nil {
		t.Fatalf("NewStoreWithConfig: %v", err)
	}

	startISO, endISO := testWindow()

	summary, err := store.HourlySummary(context.Background(), startISO, endISO)
	if err != nil {
		t.Fatalf("HourlySummary: %v", err)
	}

	hour := summary.Hours["09:00"]
	if len(hour) != 3 {
		t.Fatalf("hour 09:00 = %v, want 3 identifiers", hour)
	}
	if hour[0][0] != "Arc - github.com" || hour[0][1] != "10m" {
		t.Errorf("first entry = %v", hour[0])
	}
}

func TestNewStoreWithConfig_MissingFileIsFatal(t *testing.T) {
	if _, err := NewStoreWithConfig(Config{Path: filepath.Join(t.TempDir(), "missing.db")}); err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestNewStoreWithConfig_EmptyPathIsFatal(t *testing.T) {
	if _, err := NewStoreWithConfig(Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}
