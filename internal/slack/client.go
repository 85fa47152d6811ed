// Package slack wraps the Slack Web API search and identity endpoints.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jharlow/activity-mcp/internal/logging"
	"github.com/jharlow/activity-mcp/internal/paginate"
	"github.com/jharlow/activity-mcp/internal/timeutil"
)

const (
	baseURL = "https://slack.com/api"

	// Matches per search page. Slack caps this at 100.
	searchPageSize = 100

	defaultMaxPages = 1000
)

// Client is a Slack Web API client authenticated with a user token.
type Client struct {
	baseURL    string
	token      string
	maxPages   int
	httpClient *http.Client
}

// Config holds Slack client configuration.
type Config struct {
	Token    string // User token (xoxp-...); search requires a user, not a bot
	MaxPages int
}

// NewClient creates a new Slack client from environment variables.
func NewClient() (*Client, error) {
	token := os.Getenv("SLACK_USER_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("SLACK_USER_TOKEN not set")
	}
	return NewClientWithConfig(Config{Token: token, MaxPages: defaultMaxPages})
}

// NewClientWithConfig creates a new client with explicit configuration.
func NewClientWithConfig(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	return &Client{
		baseURL:  baseURL,
		token:    cfg.Token,
		maxPages: cfg.MaxPages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// call issues a Web API method call and decodes the envelope into out,
// which must embed the ok/error fields.
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := c.baseURL + "/" + method
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	logging.Debug("slack", "%s -> %d %s", method, resp.StatusCode, logging.Truncate(string(body), 200))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("slack API error (%d): %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !envelope.OK {
		return fmt.Errorf("slack %s failed: %s", method, envelope.Error)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Identity is the authenticated user, from auth.test.
type Identity struct {
	User   string `json:"user,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

// Identity returns the authenticated Slack user. A missing user_id means
// the configured token is not a user token.
func (c *Client) Identity(ctx context.Context) (Identity, error) {
	var response struct {
		User   string `json:"user"`
		UserID string `json:"user_id"`
	}
	if err := c.call(ctx, "auth.test", nil, &response); err != nil {
		return Identity{}, err
	}
	if response.UserID == "" {
		return Identity{}, fmt.Errorf("must be using a user token; identity has no user_id")
	}
	return Identity{User: response.User, UserID: response.UserID}, nil
}

// Channel is the channel a matched message was posted in.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Message is one search match. TS is rewritten from Slack's
// local-encoded epoch seconds to a UTC ISO-8601 string before it is
// returned to callers.
type Message struct {
	Channel  Channel `json:"channel"`
	IID      string  `json:"iid,omitempty"`
	Text     string  `json:"text,omitempty"`
	User     string  `json:"user,omitempty"`
	Username string  `json:"username,omitempty"`
	TS       string  `json:"ts,omitempty"`
}

type searchResponse struct {
	Messages struct {
		Matches []Message `json:"matches"`
		Paging  struct {
			Pages int `json:"pages"`
		} `json:"paging"`
	} `json:"messages"`
	Query string `json:"query"`
}

// SearchMessages runs the assembled query through search.messages,
// fetching every page. Pages start at 1; the paging.pages total is the
// termination signal.
func (c *Client) SearchMessages(ctx context.Context, p SearchParams) ([]Message, error) {
	query, err := BuildSearchQuery(p)
	if err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context, page int) (paginate.Page[Message], error) {
		params := url.Values{}
		params.Set("query", query)
		params.Set("sort", "timestamp")
		params.Set("count", strconv.Itoa(searchPageSize))
		params.Set("page", strconv.Itoa(page))

		var response searchResponse
		if err := c.call(ctx, "search.messages", params, &response); err != nil {
			return paginate.Page[Message]{}, err
		}

		return paginate.Page[Message]{
			Items: response.Messages.Matches,
			Last:  page >= response.Messages.Paging.Pages,
		}, nil
	}

	messages, err := paginate.Run(ctx, 1, fetch, paginate.Options{MaxPages: c.maxPages})
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}

	for i := range messages {
		messages[i].TS = normalizeTS(messages[i].TS)
	}
	return messages, nil
}

// normalizeTS converts a Slack message timestamp (epoch-seconds-like,
// implicitly local) into a true UTC ISO-8601 string. Unparseable values
// pass through untouched.
func normalizeTS(ts string) string {
	if ts == "" {
		return ts
	}
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ts
	}
	millis := int64((seconds - float64(timeutil.TZOffsetSeconds)) * 1000)
	return timeutil.ISO(time.UnixMilli(millis))
}

// ConversationFilter selects which conversation types to list.
type ConversationFilter struct {
	IncludeArchived        bool
	IncludeDirectMessages  bool
	IncludeGroupMessages   bool
	IncludePublicChannels  bool
	IncludePrivateChannels bool
}

func (f ConversationFilter) types() string {
	var types []string
	if f.IncludeDirectMessages {
		types = append(types, "im")
	}
	if f.IncludeGroupMessages {
		types = append(types, "mpim")
	}
	if f.IncludePublicChannels {
		types = append(types, "public_channel")
	}
	if f.IncludePrivateChannels {
		types = append(types, "private_channel")
	}
	return strings.Join(types, ",")
}

// Conversation is one channel/DM/group from conversations.list.
type Conversation struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	User       string `json:"user,omitempty"`
	Created    int64  `json:"created"`
	IsArchived bool   `json:"is_archived"`
	Updated    int64  `json:"updated"`
	Topic      *struct {
		Value string `json:"value"`
	} `json:"topic,omitempty"`
}

// ListConversations returns the conversations visible to the token.
func (c *Client) ListConversations(ctx context.Context, f ConversationFilter) ([]Conversation, error) {
	params := url.Values{}
	params.Set("exclude_archived", strconv.FormatBool(!f.IncludeArchived))
	params.Set("types", f.types())

	var response struct {
		Channels []Conversation `json:"channels"`
	}
	if err := c.call(ctx, "conversations.list", params, &response); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return response.Channels, nil
}
