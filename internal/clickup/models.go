package clickup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jharlow/activity-mcp/internal/timeutil"
)

// ID is an entity identifier. ClickUp is inconsistent about whether ids
// are JSON strings or numbers, so both decode to a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Millis is a timestamp transported as epoch milliseconds (usually a
// string, sometimes a number). It marshals back out as an ISO-8601 string
// so the agent never sees raw epochs.
type Millis struct {
	time.Time
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("epoch millis is neither string nor number: %w", err)
		}
		s = n.String()
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse epoch millis %q: %w", s, err)
	}
	m.Time = time.UnixMilli(ms).UTC()
	return nil
}

func (m Millis) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(timeutil.ISO(m.Time))
}

// User is a ClickUp account, identified by id.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// Status wraps the free-text status label.
type Status struct {
	Status string `json:"status"`
}

// IDName is the embedded shape of projects, folders and spaces.
type IDName struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// List is a task container. Sprint lists carry a start/due window in epoch
// millis, used to locate the sprint active on a given day.
type List struct {
	ID        ID      `json:"id"`
	Name      string  `json:"name"`
	Content   string  `json:"content,omitempty"`
	StartDate *Millis `json:"start_date,omitempty"`
	DueDate   *Millis `json:"due_date,omitempty"`
	Archived  bool    `json:"archived,omitempty"`
}

// Task is the denormalized shape ClickUp returns: every foreign entity
// embedded in full. Space may be missing, and when present usually carries
// only an id (the name gets backfilled from a team spaces fetch).
type Task struct {
	ID          string  `json:"id"`
	CustomID    *string `json:"custom_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      Status  `json:"status"`
	Creator     User    `json:"creator"`
	Assignees   []User  `json:"assignees"`
	Watchers    []User  `json:"watchers"`
	DateCreated *Millis `json:"date_created,omitempty"`
	DateUpdated *Millis `json:"date_updated,omitempty"`
	DateClosed  *Millis `json:"date_closed,omitempty"`
	Project     IDName  `json:"project"`
	Folder      IDName  `json:"folder"`
	List        List    `json:"list"`
	Space       *IDName `json:"space,omitempty"`
}

// AuthorizedUser is the account behind the configured token.
type AuthorizedUser struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
