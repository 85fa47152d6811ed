package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/timing"
)

func registerTiming(s *server.MCPServer, store *timing.Store) {
	s.AddTool(desktopActivitiesTool(), handleDesktopActivities(store))
	s.AddTool(hourlySummaryTool(), handleHourlySummary(store))
}

func desktopActivitiesTool() mcp.Tool {
	return mcp.NewTool("getDesktopActivities",
		mcp.WithDescription("Retrieves a page of desktop activities. They contain a start and end ISO string, an application, the window title, and a path like an internal value. Often a website, screen, or page. The response carries the total row count so further pages can be requested."),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Lower bound of the time range as ISO"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Upper bound of the time range as ISO"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, starts at 1."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Rows per page. Defaults to 500."),
		),
	)
}

func handleDesktopActivities(store *timing.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		page, err := store.Activities(ctx,
			stringArg(args, "start"), stringArg(args, "end"),
			intArg(args, "page"), intArg(args, "limit"))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(page)
	}
}

func hourlySummaryTool() mcp.Tool {
	return mcp.NewTool("getHourlyActivitySummary",
		mcp.WithDescription("Summarizes desktop activity per hour. Each hour lists app and website identifiers with the total time spent on them. Spans under 30 seconds are dropped as noise."),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Lower bound of the time range as ISO"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Upper bound of the time range as ISO"),
		),
	)
}

func handleHourlySummary(store *timing.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		breakdown, err := store.HourlySummary(ctx, stringArg(args, "start"), stringArg(args, "end"))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(breakdown)
	}
}
