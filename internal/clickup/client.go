// Package clickup wraps the ClickUp v2 API: paginated task search, entity
// indexing, and sprint lookup.
package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jharlow/activity-mcp/internal/logging"
	"github.com/jharlow/activity-mcp/internal/paginate"
	"github.com/jharlow/activity-mcp/internal/request"
)

const baseURL = "https://api.clickup.com/api/v2"

// defaultMaxPages bounds pagination runs so a provider stuck on
// last_page=false cannot loop forever.
const defaultMaxPages = 1000

// Client is a ClickUp API client.
type Client struct {
	baseURL    string
	token      string
	teamID     string
	maxPages   int
	httpClient *http.Client
}

// Config holds ClickUp client configuration.
type Config struct {
	Token    string // Personal API token
	TeamID   string // Workspace/team id, numeric
	MaxPages int    // Pagination cap, 0 = unlimited
}

// NewClient creates a new ClickUp client from environment variables.
func NewClient() (*Client, error) {
	token := os.Getenv("CLICKUP_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("CLICKUP_TOKEN not set")
	}

	teamID := os.Getenv("CLICKUP_TEAM_ID")
	if teamID == "" {
		return nil, fmt.Errorf("CLICKUP_TEAM_ID not set")
	}

	return NewClientWithConfig(Config{
		Token:    token,
		TeamID:   teamID,
		MaxPages: defaultMaxPages,
	})
}

// NewClientWithConfig creates a new client with explicit configuration.
func NewClientWithConfig(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if _, err := strconv.ParseInt(cfg.TeamID, 10, 64); err != nil {
		return nil, fmt.Errorf("CLICKUP_TEAM_ID must be a number, got %q", cfg.TeamID)
	}

	return &Client{
		baseURL:  baseURL,
		token:    cfg.Token,
		teamID:   cfg.TeamID,
		maxPages: cfg.MaxPages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// get issues a GET request and decodes the response into out. Absent
// params are stripped before the URL is built.
func (c *Client) get(ctx context.Context, path string, params request.Params, out any) error {
	url := c.baseURL + path
	if query := params.Encode().Encode(); query != "" {
		url += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	logging.Debug("clickup", "GET %s -> %d %s", path, resp.StatusCode, logging.Truncate(string(body), 200))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("clickup API error (%d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getPaginated drives a page-based listing endpoint to exhaustion. Pages
// start at 0; the loop runs until the response's last_page flag. Items
// live under resultKey in each response, defaulting to an empty page when
// the key is missing.
func (c *Client) getPaginated(ctx context.Context, path, resultKey string, params request.Params) ([]json.RawMessage, error) {
	fetch := func(ctx context.Context, page int) (paginate.Page[json.RawMessage], error) {
		pageParams := request.Params{"page": page}
		for k, v := range params {
			pageParams[k] = v
		}

		var response map[string]json.RawMessage
		if err := c.get(ctx, path, pageParams, &response); err != nil {
			return paginate.Page[json.RawMessage]{}, err
		}

		var last bool
		if raw, ok := response["last_page"]; ok {
			if err := json.Unmarshal(raw, &last); err != nil {
				return paginate.Page[json.RawMessage]{}, fmt.Errorf("decode last_page: %w", err)
			}
		}

		var items []json.RawMessage
		if raw, ok := response[resultKey]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				return paginate.Page[json.RawMessage]{}, fmt.Errorf("decode %q: %w", resultKey, err)
			}
		}

		return paginate.Page[json.RawMessage]{Items: items, Last: last}, nil
	}

	return paginate.Run(ctx, 0, fetch, paginate.Options{MaxPages: c.maxPages})
}

// User returns the account behind the configured token.
func (c *Client) User(ctx context.Context) (AuthorizedUser, error) {
	var response struct {
		User *AuthorizedUser `json:"user"`
	}
	if err := c.get(ctx, "/user", nil, &response); err != nil {
		return AuthorizedUser{}, err
	}
	if response.User == nil {
		return AuthorizedUser{}, fmt.Errorf("unable to read current ClickUp user, check your CLICKUP_TOKEN")
	}
	return *response.User, nil
}

// Spaces returns the team's spaces, most recently updated first.
func (c *Client) Spaces(ctx context.Context) ([]IDName, error) {
	var response struct {
		Spaces []IDName `json:"spaces"`
	}
	params := request.Params{"order_by": "updated"}
	if err := c.get(ctx, "/team/"+c.teamID+"/space", params, &response); err != nil {
		return nil, fmt.Errorf("fetch spaces: %w", err)
	}
	return response.Spaces, nil
}
