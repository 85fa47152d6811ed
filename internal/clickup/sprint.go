package clickup

import (
	"context"
	"fmt"
	"time"

	"github.com/jharlow/activity-mcp/internal/request"
)

// SprintTasksResult is the sprint list that was matched plus its tasks,
// indexed.
type SprintTasksResult struct {
	SprintID   string       `json:"sprint_id"`
	SprintName string       `json:"sprint_name"`
	StartDate  *Millis      `json:"start_date,omitempty"`
	DueDate    *Millis      `json:"due_date,omitempty"`
	IndexedTasks
}

// SprintTasks finds the sprint list active on the given day within the
// named space and returns its tasks. day is YYYY-MM-DD; empty means today.
func (c *Client) SprintTasks(ctx context.Context, spaceName, day string) (SprintTasksResult, error) {
	onDay := time.Now().UTC()
	if day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			return SprintTasksResult{}, fmt.Errorf("parse day %q: %w", day, err)
		}
		onDay = parsed
	}

	space, err := c.spaceByName(ctx, spaceName)
	if err != nil {
		return SprintTasksResult{}, err
	}

	sprint, err := c.sprintListOn(ctx, space.ID, onDay)
	if err != nil {
		return SprintTasksResult{}, err
	}

	params := request.Params{"include_closed": true}
	raw, err := c.getPaginated(ctx, "/list/"+string(sprint.ID)+"/task", "tasks", params)
	if err != nil {
		return SprintTasksResult{}, fmt.Errorf("sprint tasks: %w", err)
	}

	tasks, err := c.decodeTasks(ctx, raw)
	if err != nil {
		return SprintTasksResult{}, err
	}

	return SprintTasksResult{
		SprintID:     string(sprint.ID),
		SprintName:   sprint.Name,
		StartDate:    sprint.StartDate,
		DueDate:      sprint.DueDate,
		IndexedTasks: IndexTasks(tasks),
	}, nil
}

func (c *Client) spaceByName(ctx context.Context, name string) (IDName, error) {
	spaces, err := c.Spaces(ctx)
	if err != nil {
		return IDName{}, err
	}
	for _, space := range spaces {
		if space.Name == name {
			return space, nil
		}
	}
	return IDName{}, fmt.Errorf("no space named %q in team %s", name, c.teamID)
}

// sprintListOn returns the non-archived folderless list whose start/due
// window contains the given day.
func (c *Client) sprintListOn(ctx context.Context, spaceID ID, day time.Time) (List, error) {
	var response struct {
		Lists []List `json:"lists"`
	}
	if err := c.get(ctx, "/space/"+string(spaceID)+"/list", nil, &response); err != nil {
		return List{}, fmt.Errorf("fetch lists: %w", err)
	}

	for _, list := range response.Lists {
		if list.Archived || list.StartDate == nil || list.DueDate == nil {
			continue
		}
		if sprintWindowContains(*list.StartDate, *list.DueDate, day) {
			return list, nil
		}
	}

	return List{}, fmt.Errorf("no sprint list active on %s in space %s", day.Format("2006-01-02"), spaceID)
}

// sprintWindowContains checks start <= day <= due at day granularity, so a
// sprint ending at any time on its due day still matches that day.
func sprintWindowContains(start, due Millis, day time.Time) bool {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	return !due.Time.Before(dayStart) && !start.Time.After(dayEnd)
}
