package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/google"
)

func registerGoogle(s *server.MCPServer, client *google.Client) {
	s.AddTool(googleUserTool(), handleGoogleUser(client))
	s.AddTool(googleDirectoryPeopleTool(), handleGoogleDirectoryPeople(client))
	s.AddTool(googleCalendarEventsTool(), handleGoogleCalendarEvents(client))
	s.AddTool(googleCreateEventTool(), handleGoogleCreateEvent(client))
	s.AddTool(googleRespondToEventTool(), handleGoogleRespondToEvent(client))
	s.AddTool(googleColorsTool(), handleGoogleColors(client))
}

func googleUserTool() mcp.Tool {
	return mcp.NewTool("getGoogleUser",
		mcp.WithDescription("Get name and email associated with the logged in user."),
	)
}

func handleGoogleUser(client *google.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile, err := client.Profile(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(profile)
	}
}

func googleDirectoryPeopleTool() mcp.Tool {
	return mcp.NewTool("getGoogleDirectoryPeople",
		mcp.WithDescription("Get names and email addresses for all people in the user's directory."),
	)
}

func handleGoogleDirectoryPeople(client *google.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		people, err := client.DirectoryPeople(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(people)
	}
}

func googleCalendarEventsTool() mcp.Tool {
	return mcp.NewTool("getGoogleCalendarEvents",
		mcp.WithDescription("Get events from Google Calendar. If this tool contains a nextPageToken, then there are more pages of data available."),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description("Calendar ID. To get the main calendar of the current user, use 'primary'."),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Lower bound (exclusive) for an event's end time to filter by. Must be an RFC3339 timestamp with mandatory time zone offset."),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("Upper bound (exclusive) for an event's start time to filter by. Must be an RFC3339 timestamp with mandatory time zone offset."),
		),
		mcp.WithString("q",
			mcp.Description("Free text search terms to find events that match these terms in the following fields: summary, description, location, attendee's displayName, attendee's email."),
		),
		mcp.WithString("pageToken",
			mcp.Description("Token specifying which result page to return."),
		),
		mcp.WithString("attendeeEmail",
			mcp.Description("Optionally filter to a single attendee. Prefer to do this with the email address from getGoogleUser."),
		),
	)
}

func handleGoogleCalendarEvents(client *google.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		page, err := client.CalendarEvents(ctx, google.EventsParams{
			CalendarID:    stringArg(args, "calendarId"),
			TimeMin:       stringArg(args, "timeMin"),
			TimeMax:       stringArg(args, "timeMax"),
			Query:         stringArg(args, "q"),
			PageToken:     stringArg(args, "pageToken"),
			AttendeeEmail: stringArg(args, "attendeeEmail"),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(page)
	}
}

func googleCreateEventTool() mcp.Tool {
	return mcp.NewTool("createGoogleCalendarEvent",
		mcp.WithDescription("Create a new calendar event, it can be recurring or non-recurring."),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description("The calendar ID."),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("The summary or title of the event. Appears on calendar."),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("The description of the event."),
		),
		mcp.WithString("location",
			mcp.Description("Where the event is. Optional."),
		),
		mcp.WithArray("attendeesEmails",
			mcp.Required(),
			mcp.Description("A list of attendees emails."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("remindersMinutes",
			mcp.Description("Up to 5 numbers as minutes before the event to send a notification. Can send up to 4 weeks in advance."),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithString("fullDayEventStartDate",
			mcp.Description("Start date in YYYY-MM-DD if this is an all-day event."),
		),
		mcp.WithString("fullDayEventEndDate",
			mcp.Description("End date in YYYY-MM-DD if this is an all-day event."),
		),
		mcp.WithString("nonFullDayEventStartDateTime",
			mcp.Description("RFC3339 date-time value if this is not an all-day event."),
		),
		mcp.WithString("nonFullDayEventEndDateTime",
			mcp.Description("RFC3339 date-time value if this is not an all-day event."),
		),
		mcp.WithString("timeZone",
			mcp.Required(),
			mcp.Description("IANA time zone for the event eg. Melbourne/Australia."),
		),
		mcp.WithArray("recurrence",
			mcp.Description("List of RRULE, EXRULE, RDATE and EXDATE lines for a recurring event, as specified in RFC5545. Note that DTSTART and DTEND lines are not allowed in this field; event start and end times are specified in the start and end fields. This field is omitted for single events or instances of recurring events."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("colorId",
			mcp.Description("Color for the event, see getGoogleCalendarColors for color IDs and their corresponding hex codes."),
		),
	)
}

func handleGoogleCreateEvent(client *google.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		created, err := client.CreateEvent(ctx, google.CreateEventParams{
			CalendarID:       stringArg(args, "calendarId"),
			Summary:          stringArg(args, "summary"),
			Description:      stringArg(args, "description"),
			Location:         stringArg(args, "location"),
			AttendeesEmails:  stringSliceArg(args, "attendeesEmails"),
			RemindersMinutes: int64SliceArg(args, "remindersMinutes"),
			StartDate:        stringArg(args, "fullDayEventStartDate"),
			EndDate:          stringArg(args, "fullDayEventEndDate"),
			StartDateTime:    stringArg(args, "nonFullDayEventStartDateTime"),
			EndDateTime:      stringArg(args, "nonFullDayEventEndDateTime"),
			TimeZone:         stringArg(args, "timeZone"),
			Recurrence:       stringSliceArg(args, "recurrence"),
			ColorID:          stringArg(args, "colorId"),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(created)
	}
}

func googleRespondToEventTool() mcp.Tool {
	return mcp.NewTool("respondToGoogleCalendarEvent",
		mcp.WithDescription("Update authorized user's response status for a given event. Returns the updated event."),
		mcp.WithString("calendarId",
			mcp.Required(),
			mcp.Description("Calendar ID."),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("Event ID to respond to. Always prefer to use recurringEventId if available, unless specified otherwise."),
		),
		mcp.WithString("response",
			mcp.Required(),
			mcp.Description("Status to respond with. One of declined, needsAction, accepted, or tentative."),
		),
	)
}

func handleGoogleRespondToEvent(client *google.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		updated, err := client.RespondToEvent(ctx,
			stringArg(args, "calendarId"), stringArg(args, "eventId"), stringArg(args, "response"))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(updated)
	}
}

func googleColorsTool() mcp.Tool {
	return mcp.NewTool("getGoogleCalendarColors",
		mcp.WithDescription("Get a record of event color IDs to their hex codes."),
	)
}

func handleGoogleColors(client *google.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		colors, err := client.Colors(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(colors)
	}
}
