package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/calendar/v3"
)

// EventsParams filter a calendar event listing.
type EventsParams struct {
	CalendarID    string // "primary" for the user's main calendar
	TimeMin       string // RFC3339, lower bound on event end time
	TimeMax       string // RFC3339, upper bound on event start time
	Query         string // Free text search
	PageToken     string
	AttendeeEmail string // Keep only events this address attends
}

// EventsPage is one page of calendar events. A non-empty NextPageToken
// means more pages are available.
type EventsPage struct {
	Events        []*calendar.Event `json:"events"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

// CalendarEvents lists events on a calendar within a window. The
// attendee filter is applied after fetching, the Calendar API has no
// server-side equivalent.
func (c *Client) CalendarEvents(ctx context.Context, params EventsParams) (EventsPage, error) {
	if params.CalendarID == "" {
		return EventsPage{}, fmt.Errorf("calendar id is required")
	}

	call := c.calendar.Events.List(params.CalendarID).
		SingleEvents(true).
		OrderBy("startTime")
	if params.TimeMin != "" {
		call = call.TimeMin(params.TimeMin)
	}
	if params.TimeMax != "" {
		call = call.TimeMax(params.TimeMax)
	}
	if params.Query != "" {
		call = call.Q(params.Query)
	}
	if params.PageToken != "" {
		call = call.PageToken(params.PageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return EventsPage{}, fmt.Errorf("list events: %w", err)
	}

	events := resp.Items
	if params.AttendeeEmail != "" {
		filtered := events[:0]
		for _, event := range events {
			for _, attendee := range event.Attendees {
				if strings.EqualFold(attendee.Email, params.AttendeeEmail) {
					filtered = append(filtered, event)
					break
				}
			}
		}
		events = filtered
	}
	return EventsPage{Events: events, NextPageToken: resp.NextPageToken}, nil
}

// CreateEventParams describe a new calendar event. Exactly one of the
// full-day date pair or the date-time pair must be set.
type CreateEventParams struct {
	CalendarID       string
	Summary          string
	Description      string
	Location         string
	AttendeesEmails  []string
	RemindersMinutes []int64 // Popup reminders, minutes before the event
	StartDate        string  // YYYY-MM-DD for all-day events
	EndDate          string
	StartDateTime    string // RFC3339 for timed events
	EndDateTime      string
	TimeZone         string // IANA name
	Recurrence       []string
	ColorID          string
}

// CreateEvent inserts a new event and returns it as created.
func (c *Client) CreateEvent(ctx context.Context, params CreateEventParams) (*calendar.Event, error) {
	if params.CalendarID == "" {
		return nil, fmt.Errorf("calendar id is required")
	}
	fullDay := params.StartDate != "" || params.EndDate != ""
	timed := params.StartDateTime != "" || params.EndDateTime != ""
	if fullDay == timed {
		return nil, fmt.Errorf("set either full-day dates or date-times, not both")
	}

	event := &calendar.Event{
		Summary:     params.Summary,
		Description: params.Description,
		Location:    params.Location,
		Recurrence:  params.Recurrence,
		ColorId:     params.ColorID,
	}
	if fullDay {
		if params.StartDate == "" || params.EndDate == "" {
			return nil, fmt.Errorf("full-day events need both start and end dates")
		}
		event.Start = &calendar.EventDateTime{Date: params.StartDate, TimeZone: params.TimeZone}
		event.End = &calendar.EventDateTime{Date: params.EndDate, TimeZone: params.TimeZone}
	} else {
		if params.StartDateTime == "" || params.EndDateTime == "" {
			return nil, fmt.Errorf("timed events need both start and end date-times")
		}
		event.Start = &calendar.EventDateTime{DateTime: params.StartDateTime, TimeZone: params.TimeZone}
		event.End = &calendar.EventDateTime{DateTime: params.EndDateTime, TimeZone: params.TimeZone}
	}

	for _, email := range params.AttendeesEmails {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	if len(params.RemindersMinutes) > 0 {
		overrides := make([]*calendar.EventReminder, 0, len(params.RemindersMinutes))
		for _, minutes := range params.RemindersMinutes {
			overrides = append(overrides, &calendar.EventReminder{Method: "popup", Minutes: minutes})
		}
		event.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		}
	}

	created, err := c.calendar.Events.Insert(params.CalendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

var responseStatuses = map[string]bool{
	"accepted":    true,
	"declined":    true,
	"tentative":   true,
	"needsAction": true,
}

// RespondToEvent sets the authorized user's attendance response on an
// event and returns the updated event.
func (c *Client) RespondToEvent(ctx context.Context, calendarID, eventID, response string) (*calendar.Event, error) {
	if calendarID == "" || eventID == "" {
		return nil, fmt.Errorf("calendar id and event id are required")
	}
	if !responseStatuses[response] {
		return nil, fmt.Errorf("invalid response status: %q", response)
	}

	event, err := c.calendar.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	found := false
	for _, attendee := range event.Attendees {
		if attendee.Self {
			attendee.ResponseStatus = response
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("authorized user is not an attendee of event %s", eventID)
	}

	patched, err := c.calendar.Events.Patch(calendarID, eventID, &calendar.Event{
		Attendees: event.Attendees,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("patch event: %w", err)
	}
	return patched, nil
}
