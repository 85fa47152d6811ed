// Package github wraps the GitHub GraphQL API for identity and
// contribution queries.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const graphqlURL = "https://api.github.com/graphql"

// Client is a GitHub GraphQL API client.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// Config holds GitHub client configuration.
type Config struct {
	Token string // Personal access token
}

// NewClient creates a new GitHub client from environment variables.
func NewClient() (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN not set")
	}
	return NewClientWithConfig(Config{Token: token})
}

// NewClientWithConfig creates a new client with explicit configuration.
func NewClientWithConfig(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is required")
	}
	return &Client{
		url:   graphqlURL,
		token: cfg.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// graphqlRequest sends a GraphQL query to GitHub
func (c *Client) graphqlRequest(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	body := map[string]any{
		"query": query,
	}
	if variables != nil {
		body["variables"] = variables
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("github API error (%d): %s", resp.StatusCode, string(respBody))
	}

	// Check for GraphQL errors
	var result struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(respBody, &result) == nil && len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", result.Errors[0].Message)
	}

	return respBody, nil
}

const viewerQuery = `
	query {
		viewer {
			login
			name
		}
	}`

// Viewer is the authenticated GitHub user.
type Viewer struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// Viewer returns the authenticated user's login and name.
func (c *Client) Viewer(ctx context.Context) (Viewer, error) {
	body, err := c.graphqlRequest(ctx, viewerQuery, nil)
	if err != nil {
		return Viewer{}, err
	}

	var response struct {
		Data struct {
			Viewer Viewer `json:"viewer"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return Viewer{}, fmt.Errorf("decode response: %w", err)
	}
	return response.Data.Viewer, nil
}

const contributionsQuery = `
	query activity($username: String!, $from: DateTime!, $to: DateTime!) {
		user(login: $username) {
			contributionsCollection(from: $from, to: $to) {
				commitContributionsByRepository(maxRepositories: 100) {
					repository {
						name
						owner {
							login
						}
					}
					contributions(first: 50) {
						nodes {
							commitCount
							occurredAt
						}
						totalCount
					}
				}
				pullRequestContributionsByRepository(maxRepositories: 100) {
					repository {
						nameWithOwner
					}
					contributions(first: 50) {
						nodes {
							occurredAt
							pullRequest {
								title
								url
								body
								closed
								closedAt
								updatedAt
							}
						}
					}
				}
				pullRequestReviewContributionsByRepository(maxRepositories: 100) {
					repository {
						nameWithOwner
					}
					contributions(first: 50) {
						nodes {
							occurredAt
							pullRequest {
								title
								url
								body
								closed
								closedAt
								updatedAt
							}
							pullRequestReview {
								state
								comments(first: 50) {
									nodes {
										body
										diffHunk
									}
								}
							}
						}
					}
				}
			}
		}
	}`

// UserContributions returns commits, pull requests and reviews by
// repository for the given user and window. The GraphQL result passes
// through to the agent unreshaped.
func (c *Client) UserContributions(ctx context.Context, username, from, to string) (json.RawMessage, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	body, err := c.graphqlRequest(ctx, contributionsQuery, map[string]any{
		"username": username,
		"from":     from,
		"to":       to,
	})
	if err != nil {
		return nil, err
	}

	var response struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return response.Data, nil
}
