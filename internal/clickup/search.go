package clickup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jharlow/activity-mcp/internal/request"
)

// SearchParams filters a team-wide task search. Date bounds are ISO-8601.
type SearchParams struct {
	Assignees     []string
	ProjectIDs    []string
	SpaceIDs      []string
	ListIDs       []string
	DateUpdatedGT string
	DateUpdatedLT string
}

// duplicateSingleFilters applies the single-element workaround to every
// distinctly-filterable array parameter. ClickUp treats a one-element
// array as a bare scalar and drops the filter, so a true single-item
// filter has to be sent as the item twice.
func duplicateSingleFilters(p SearchParams) SearchParams {
	p.Assignees = request.DuplicateSingle(p.Assignees)
	p.ProjectIDs = request.DuplicateSingle(p.ProjectIDs)
	p.SpaceIDs = request.DuplicateSingle(p.SpaceIDs)
	p.ListIDs = request.DuplicateSingle(p.ListIDs)
	return p
}

func (p SearchParams) requestParams() (request.Params, error) {
	params := request.Params{
		"order_by":                     "updated",
		"include_closed":               true,
		"include_markdown_description": true,
	}

	for key, iso := range map[string]string{
		"date_updated_gt": p.DateUpdatedGT,
		"date_updated_lt": p.DateUpdatedLT,
	} {
		millis, err := request.ISOToEpochMillis(iso)
		if err != nil {
			return nil, err
		}
		if millis != "" {
			params[key] = millis
		}
	}

	for key, ids := range map[string][]string{
		"assignees":   p.Assignees,
		"project_ids": p.ProjectIDs,
		"space_ids":   p.SpaceIDs,
		"list_ids":    p.ListIDs,
	} {
		if len(ids) > 0 {
			params[key] = ids
		}
	}

	return params, nil
}

// SearchTasks fetches every page of matching team tasks, backfills space
// names, and returns the indexed result.
func (c *Client) SearchTasks(ctx context.Context, p SearchParams) (IndexedTasks, error) {
	params, err := duplicateSingleFilters(p).requestParams()
	if err != nil {
		return IndexedTasks{}, err
	}

	raw, err := c.getPaginated(ctx, "/team/"+c.teamID+"/task", "tasks", params)
	if err != nil {
		return IndexedTasks{}, fmt.Errorf("search tasks: %w", err)
	}

	tasks, err := c.decodeTasks(ctx, raw)
	if err != nil {
		return IndexedTasks{}, err
	}

	return IndexTasks(tasks), nil
}

// decodeTasks parses raw task objects and resolves space names. Task
// responses embed the space as a bare id, so names come from a separate
// team spaces fetch.
func (c *Client) decodeTasks(ctx context.Context, raw []json.RawMessage) ([]Task, error) {
	spaces, err := c.Spaces(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[ID]string, len(spaces))
	for _, space := range spaces {
		names[space.ID] = space.Name
	}

	tasks := make([]Task, 0, len(raw))
	for _, item := range raw {
		var task Task
		if err := json.Unmarshal(item, &task); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		if task.Space != nil {
			if name, ok := names[task.Space.ID]; ok {
				task.Space.Name = name
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
