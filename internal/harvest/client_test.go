package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClientWithConfig(Config{AccessToken: "tok", AccountID: "12345"})
	if err != nil {
		t.Fatalf("NewClientWithConfig: %v", err)
	}
	client.baseURL = server.URL
	return client
}

func TestProjectAssignments_PaginatesUntilNullNextPage(t *testing.T) {
	var pages []string

	mux := http.NewServeMux()
	mux.HandleFunc("/users/me/project_assignments", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Harvest-Account-ID"); got != "12345" {
			t.Errorf("Harvest-Account-ID = %q", got)
		}
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		if page == "1" {
			fmt.Fprint(w, `{"project_assignments": [{"id": 1, "is_active": true}], "next_page": 2}`)
			return
		}
		fmt.Fprint(w, `{"project_assignments": [{"id": 2, "is_active": true}], "next_page": null}`)
	})

	client := testClient(t, mux)

	assignments, err := client.ProjectAssignments(context.Background())
	if err != nil {
		t.Fatalf("ProjectAssignments: %v", err)
	}

	if len(pages) != 2 || pages[0] != "1" || pages[1] != "2" {
		t.Errorf("pages fetched = %v, want [1 2]", pages)
	}
	if len(assignments) != 2 || assignments[0].ID != 1 || assignments[1].ID != 2 {
		t.Errorf("assignments = %+v", assignments)
	}
}

func TestCreateTimeEntry_PostsBody(t *testing.T) {
	var received TimeEntry

	mux := http.NewServeMux()
	mux.HandleFunc("/time_entries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprint(w, `{"id": 99, "hours": 1.5}`)
	})

	client := testClient(t, mux)

	created, err := client.CreateTimeEntry(context.Background(), TimeEntry{
		ProjectID: 10,
		TaskID:    20,
		SpentDate: "2025-07-22",
		Hours:     1.5,
		Notes:     "sprint review",
	})
	if err != nil {
		t.Fatalf("CreateTimeEntry: %v", err)
	}

	if received.ProjectID != 10 || received.SpentDate != "2025-07-22" {
		t.Errorf("server received %+v", received)
	}
	if len(created) == 0 {
		t.Error("created entry not returned")
	}
}

func TestCreateTimeEntry_ErrorIncludesBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/time_entries", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "task_id is invalid"}`, http.StatusUnprocessableEntity)
	})

	client := testClient(t, mux)

	_, err := client.CreateTimeEntry(context.Background(), TimeEntry{})
	if err == nil {
		t.Fatal("expected error from 422 response")
	}
}

func TestNewClientWithConfig_RequiresCredentials(t *testing.T) {
	if _, err := NewClientWithConfig(Config{AccessToken: "tok"}); err == nil {
		t.Fatal("expected error without account id")
	}
	if _, err := NewClientWithConfig(Config{AccountID: "1"}); err == nil {
		t.Fatal("expected error without access token")
	}
}
