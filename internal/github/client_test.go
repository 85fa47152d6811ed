package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClientWithConfig(Config{Token: "ghp_test"})
	if err != nil {
		t.Fatalf("NewClientWithConfig: %v", err)
	}
	client.url = srv.URL
	return client
}

func TestViewer(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer ghp_test" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !strings.Contains(body.Query, "viewer") {
			t.Errorf("query missing viewer field: %s", body.Query)
		}
		w.Write([]byte(`{"data":{"viewer":{"login":"octocat","name":"The Octocat"}}}`))
	})

	viewer, err := client.Viewer(context.Background())
	if err != nil {
		t.Fatalf("Viewer: %v", err)
	}
	if viewer.Login != "octocat" || viewer.Name != "The Octocat" {
		t.Errorf("viewer = %+v", viewer)
	}
}

func TestUserContributions(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Variables["username"] != "octocat" {
			t.Errorf("username = %v", body.Variables["username"])
		}
		if body.Variables["from"] != "2025-07-21T00:00:00.000Z" {
			t.Errorf("from = %v", body.Variables["from"])
		}
		for _, field := range []string{
			"commitContributionsByRepository",
			"pullRequestContributionsByRepository",
			"pullRequestReviewContributionsByRepository",
		} {
			if !strings.Contains(body.Query, field) {
				t.Errorf("query missing %s", field)
			}
		}
		w.Write([]byte(`{"data":{"user":{"contributionsCollection":{"commitContributionsByRepository":[]}}}}`))
	})

	data, err := client.UserContributions(context.Background(), "octocat", "2025-07-21T00:00:00.000Z", "2025-07-28T00:00:00.000Z")
	if err != nil {
		t.Fatalf("UserContributions: %v", err)
	}
	if !strings.Contains(string(data), "contributionsCollection") {
		t.Errorf("unexpected payload: %s", data)
	}
}

func TestUserContributionsRequiresUsername(t *testing.T) {
	client, err := NewClientWithConfig(Config{Token: "ghp_test"})
	if err != nil {
		t.Fatalf("NewClientWithConfig: %v", err)
	}
	if _, err := client.UserContributions(context.Background(), "", "a", "b"); err == nil {
		t.Fatal("expected error for empty username")
	}
}

func TestGraphQLError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"Could not resolve to a User with the login of 'nobody'."}]}`))
	})

	_, err := client.UserContributions(context.Background(), "nobody", "a", "b")
	if err == nil || !strings.Contains(err.Error(), "Could not resolve") {
		t.Fatalf("err = %v", err)
	}
}

func TestHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	})

	_, err := client.Viewer(context.Background())
	if err == nil || !strings.Contains(err.Error(), "github API error (401)") {
		t.Fatalf("err = %v", err)
	}
}

func TestNewClientWithConfigValidation(t *testing.T) {
	if _, err := NewClientWithConfig(Config{}); err == nil {
		t.Fatal("expected error for missing token")
	}
}
