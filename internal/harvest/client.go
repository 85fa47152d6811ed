// Package harvest wraps the Harvest v2 API: identity, project
// assignments, and time entry creation.
package harvest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jharlow/activity-mcp/internal/paginate"
)

const (
	baseURL = "https://api.harvestapp.com/v2"

	defaultMaxPages = 1000
)

// Client is a Harvest API client.
type Client struct {
	baseURL     string
	accessToken string
	accountID   string
	maxPages    int
	httpClient  *http.Client
}

// Config holds Harvest client configuration.
type Config struct {
	AccessToken string
	AccountID   string
	MaxPages    int
}

// NewClient creates a new Harvest client from environment variables.
func NewClient() (*Client, error) {
	token := os.Getenv("HARVEST_ACCESS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("HARVEST_ACCESS_TOKEN not set")
	}
	accountID := os.Getenv("HARVEST_ACCOUNT_ID")
	if accountID == "" {
		return nil, fmt.Errorf("HARVEST_ACCOUNT_ID not set")
	}
	return NewClientWithConfig(Config{
		AccessToken: token,
		AccountID:   accountID,
		MaxPages:    defaultMaxPages,
	})
}

// NewClientWithConfig creates a new client with explicit configuration.
func NewClientWithConfig(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" || cfg.AccountID == "" {
		return nil, fmt.Errorf("access token and account id are required")
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: cfg.AccessToken,
		accountID:   cfg.AccountID,
		maxPages:    cfg.MaxPages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) request(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "activity-mcp")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Harvest-Account-ID", c.accountID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("harvest API error (%d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// User is the authenticated Harvest account.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Timezone  string `json:"timezone"`
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.request(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// ProjectAssignment links the user to a billable project and its tasks.
// The nested shapes pass through as-is; the agent reads them directly.
type ProjectAssignment struct {
	ID              int64           `json:"id"`
	IsActive        bool            `json:"is_active"`
	HourlyRate      *float64        `json:"hourly_rate"`
	Project         json.RawMessage `json:"project"`
	Client          json.RawMessage `json:"client"`
	TaskAssignments json.RawMessage `json:"task_assignments"`
}

// ProjectAssignments fetches every page of the user's project
// assignments. Harvest pages start at 1 and signal the end with a null
// next_page.
func (c *Client) ProjectAssignments(ctx context.Context) ([]ProjectAssignment, error) {
	fetch := func(ctx context.Context, page int) (paginate.Page[ProjectAssignment], error) {
		var response struct {
			ProjectAssignments []ProjectAssignment `json:"project_assignments"`
			NextPage           *int                `json:"next_page"`
		}
		path := "/users/me/project_assignments?page=" + strconv.Itoa(page)
		if err := c.request(ctx, http.MethodGet, path, nil, &response); err != nil {
			return paginate.Page[ProjectAssignment]{}, err
		}
		return paginate.Page[ProjectAssignment]{
			Items: response.ProjectAssignments,
			Last:  response.NextPage == nil,
		}, nil
	}

	assignments, err := paginate.Run(ctx, 1, fetch, paginate.Options{MaxPages: c.maxPages})
	if err != nil {
		return nil, fmt.Errorf("project assignments: %w", err)
	}
	return assignments, nil
}

// TimeEntry is a new time entry to record.
type TimeEntry struct {
	ProjectID int64   `json:"project_id"`
	TaskID    int64   `json:"task_id"`
	SpentDate string  `json:"spent_date"` // YYYY-MM-DD
	Hours     float64 `json:"hours"`
	Notes     string  `json:"notes"`
}

// CreateTimeEntry records a time entry and returns the created object.
func (c *Client) CreateTimeEntry(ctx context.Context, entry TimeEntry) (json.RawMessage, error) {
	var created json.RawMessage
	if err := c.request(ctx, http.MethodPost, "/time_entries", entry, &created); err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}
	return created, nil
}
