package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/harvest"
)

func registerHarvest(s *server.MCPServer, client *harvest.Client) {
	s.AddTool(harvestUserTool(), handleHarvestUser(client))
	s.AddTool(harvestProjectAssignmentsTool(), handleHarvestProjectAssignments(client))
	s.AddTool(harvestCreateTimeEntryTool(), handleHarvestCreateTimeEntry(client))
}

func harvestUserTool() mcp.Tool {
	return mcp.NewTool("getHarvestUser",
		mcp.WithDescription("Get currently authenticated Harvest user information."),
	)
}

func handleHarvestUser(client *harvest.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, err := client.Me(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(user)
	}
}

func harvestProjectAssignmentsTool() mcp.Tool {
	return mcp.NewTool("getHarvestProjectAssignments",
		mcp.WithDescription("Get all Harvest projects and their billables."),
	)
}

func handleHarvestProjectAssignments(client *harvest.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		assignments, err := client.ProjectAssignments(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(assignments)
	}
}

func harvestCreateTimeEntryTool() mcp.Tool {
	return mcp.NewTool("createHarvestTimeEntry",
		mcp.WithDescription("Create a time entry in Harvest."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The project ID in Harvest."),
		),
		mcp.WithNumber("task_id",
			mcp.Required(),
			mcp.Description("The task ID in Harvest."),
		),
		mcp.WithString("spent_date",
			mcp.Required(),
			mcp.Description("Day in YYYY-MM-DD for time entry."),
		),
		mcp.WithNumber("hours",
			mcp.Required(),
			mcp.Description("Spent hours as a number."),
		),
		mcp.WithString("notes",
			mcp.Required(),
			mcp.Description("Description of time spent."),
		),
	)
}

func handleHarvestCreateTimeEntry(client *harvest.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		projectID, ok := int64Arg(args, "project_id")
		if !ok {
			return mcp.NewToolResultError("project_id is required"), nil
		}
		taskID, ok := int64Arg(args, "task_id")
		if !ok {
			return mcp.NewToolResultError("task_id is required"), nil
		}
		hours, ok := float64Arg(args, "hours")
		if !ok {
			return mcp.NewToolResultError("hours is required"), nil
		}
		spentDate := stringArg(args, "spent_date")
		if spentDate == "" {
			return mcp.NewToolResultError("spent_date is required"), nil
		}

		created, err := client.CreateTimeEntry(ctx, harvest.TimeEntry{
			ProjectID: projectID,
			TaskID:    taskID,
			SpentDate: spentDate,
			Hours:     hours,
			Notes:     stringArg(args, "notes"),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(created)
	}
}
