package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/clickup"
)

func registerClickUp(s *server.MCPServer, client *clickup.Client) {
	s.AddTool(clickUpUserTool(), handleClickUpUser(client))
	s.AddTool(clickUpTasksTool(), handleClickUpTasks(client))
	s.AddTool(clickUpSprintTasksTool(), handleClickUpSprintTasks(client))
}

func clickUpUserTool() mcp.Tool {
	return mcp.NewTool("getClickUpUser",
		mcp.WithDescription("Get currently authenticated ClickUp User information."),
	)
}

func handleClickUpUser(client *clickup.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, err := client.User(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(user)
	}
}

func clickUpTasksTool() mcp.Tool {
	return mcp.NewTool("getClickUpTasks",
		mcp.WithDescription("Get ClickUp tasks. Returns the tasks with entity names substituted for IDs, plus id-to-name lookup tables for the spaces, users, projects, lists, and folders involved."),
		mcp.WithArray("assignees",
			mcp.Description("Filter to ONLY tickets where given user IDs are the ASSIGNEE."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("project_ids",
			mcp.Description("List of project IDs to filter by."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("space_ids",
			mcp.Description("List of space IDs to filter by."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("list_ids",
			mcp.Description("List of list IDs to filter by."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("date_updated_gt",
			mcp.Description("ISO timestamp for minimum updated time to filter tickets to"),
		),
		mcp.WithString("date_updated_lt",
			mcp.Description("ISO timestamp for maximum updated time to filter tickets to"),
		),
	)
}

func handleClickUpTasks(client *clickup.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		indexed, err := client.SearchTasks(ctx, clickup.SearchParams{
			Assignees:     stringSliceArg(args, "assignees"),
			ProjectIDs:    stringSliceArg(args, "project_ids"),
			SpaceIDs:      stringSliceArg(args, "space_ids"),
			ListIDs:       stringSliceArg(args, "list_ids"),
			DateUpdatedGT: stringArg(args, "date_updated_gt"),
			DateUpdatedLT: stringArg(args, "date_updated_lt"),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(indexed)
	}
}

func clickUpSprintTasksTool() mcp.Tool {
	return mcp.NewTool("getClickUpSprintTasks",
		mcp.WithDescription("Get the tasks in the sprint active on a given day. Finds the sprint list in the named space whose start and due dates contain the day."),
		mcp.WithString("spaceName",
			mcp.Required(),
			mcp.Description("Name of the ClickUp space holding the sprint lists."),
		),
		mcp.WithString("day",
			mcp.Description("Day in YYYY-MM-DD the sprint should be active on. Defaults to today."),
		),
	)
}

func handleClickUpSprintTasks(client *clickup.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		result, err := client.SprintTasks(ctx, stringArg(args, "spaceName"), stringArg(args, "day"))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(result)
	}
}
