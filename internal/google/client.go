// Package google wraps the Google Calendar and People APIs.
package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

var scopes = []string{
	calendar.CalendarScope,
	people.DirectoryReadonlyScope,
	people.UserinfoProfileScope,
	people.UserinfoEmailScope,
}

// Client is an authenticated Google API client.
type Client struct {
	calendar *calendar.Service
	people   *people.Service
}

// Config holds Google client configuration.
type Config struct {
	TokenPath string // Path to an authorized_user token JSON file
}

// NewClient creates a new Google client from environment variables. The
// token file is the authorized_user JSON produced by a prior OAuth
// consent flow.
func NewClient(ctx context.Context) (*Client, error) {
	path := os.Getenv("GOOGLE_TOKEN_PATH")
	if path == "" {
		return nil, fmt.Errorf("GOOGLE_TOKEN_PATH not set")
	}
	return NewClientWithConfig(ctx, Config{TokenPath: path})
}

// NewClientWithConfig creates a new client with explicit configuration.
func NewClientWithConfig(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.TokenPath == "" {
		return nil, fmt.Errorf("token path is required")
	}
	data, err := os.ReadFile(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}

	calendarService, err := calendar.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	peopleService, err := people.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}
	return &Client{calendar: calendarService, people: peopleService}, nil
}

// Person is a name and email pair from the People API.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func personFromAPI(p *people.Person) Person {
	var person Person
	if len(p.Names) > 0 {
		person.Name = p.Names[0].DisplayName
	}
	if len(p.EmailAddresses) > 0 {
		person.Email = p.EmailAddresses[0].Value
	}
	return person
}

// Profile returns the name and email of the authorized user.
func (c *Client) Profile(ctx context.Context) (Person, error) {
	p, err := c.people.People.Get("people/me").
		PersonFields("names,emailAddresses").
		Context(ctx).Do()
	if err != nil {
		return Person{}, fmt.Errorf("get profile: %w", err)
	}
	return personFromAPI(p), nil
}

// DirectoryPeople returns every person in the user's domain directory.
// All pages are fetched.
func (c *Client) DirectoryPeople(ctx context.Context) ([]Person, error) {
	var result []Person
	pageToken := ""
	for {
		resp, err := c.people.People.ListDirectoryPeople().
			ReadMask("names,emailAddresses").
			Sources("DIRECTORY_SOURCE_TYPE_DOMAIN_PROFILE", "DIRECTORY_SOURCE_TYPE_DOMAIN_CONTACT").
			PageToken(pageToken).
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("list directory people: %w", err)
		}
		for _, p := range resp.People {
			result = append(result, personFromAPI(p))
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			return result, nil
		}
	}
}

// Colors returns a map of event color IDs to their background hex codes.
func (c *Client) Colors(ctx context.Context) (map[string]string, error) {
	resp, err := c.calendar.Colors.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get colors: %w", err)
	}
	colors := make(map[string]string, len(resp.Event))
	for id, definition := range resp.Event {
		colors[id] = definition.Background
	}
	return colors, nil
}
