package clickup

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"
)

func millisOf(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		panic(err)
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func sprintMux(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/team/900/space", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"spaces": [{"id": "s1", "name": "Autobots"}, {"id": "s2", "name": "Decepticons"}]}`)
	})
	mux.HandleFunc("/space/s1/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"lists": [
			{"id": "l0", "name": "Sprint 11", "start_date": %q, "due_date": %q, "archived": true},
			{"id": "l1", "name": "Sprint 12", "start_date": %q, "due_date": %q},
			{"id": "l2", "name": "Someday"}
		]}`,
			millisOf("2025-07-01T00:00:00Z"), millisOf("2025-07-14T23:59:59Z"),
			millisOf("2025-07-15T00:00:00Z"), millisOf("2025-07-28T23:59:59Z"))
	})
	mux.HandleFunc("/list/l1/task", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tasks": [%s], "last_page": true}`, taskJSON("1", "s1"))
	})
	return mux
}

func TestSprintTasks_FindsActiveSprint(t *testing.T) {
	client, _ := testClient(t, sprintMux(t))

	result, err := client.SprintTasks(context.Background(), "Autobots", "2025-07-22")
	if err != nil {
		t.Fatalf("SprintTasks: %v", err)
	}

	if result.SprintID != "l1" || result.SprintName != "Sprint 12" {
		t.Errorf("matched sprint %s/%s, want l1/Sprint 12", result.SprintID, result.SprintName)
	}
	if len(result.Tasks) != 1 {
		t.Errorf("got %d tasks, want 1", len(result.Tasks))
	}
	if result.Spaces["s1"] != "Autobots" {
		t.Errorf("spaces = %v", result.Spaces)
	}
}

func TestSprintTasks_NoActiveSprintIsError(t *testing.T) {
	client, _ := testClient(t, sprintMux(t))

	if _, err := client.SprintTasks(context.Background(), "Autobots", "2025-08-10"); err == nil {
		t.Fatal("expected error when no sprint window matches the day")
	}
}

func TestSprintTasks_UnknownSpaceIsError(t *testing.T) {
	client, _ := testClient(t, sprintMux(t))

	if _, err := client.SprintTasks(context.Background(), "Dinobots", "2025-07-22"); err == nil {
		t.Fatal("expected error for unknown space name")
	}
}

func TestSprintWindowContains_DueDayInclusive(t *testing.T) {
	start := Millis{Time: time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)}
	due := Millis{Time: time.Date(2025, 7, 28, 17, 0, 0, 0, time.UTC)}

	cases := []struct {
		day  string
		want bool
	}{
		{"2025-07-14", false},
		{"2025-07-15", true}, // sprint starts mid-day but its start day counts
		{"2025-07-22", true},
		{"2025-07-28", true}, // due day counts even though the window ends mid-day
		{"2025-07-29", false},
	}
	for _, tc := range cases {
		day, _ := time.Parse("2006-01-02", tc.day)
		if got := sprintWindowContains(start, due, day); got != tc.want {
			t.Errorf("contains(%s) = %v, want %v", tc.day, got, tc.want)
		}
	}
}
