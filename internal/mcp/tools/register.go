package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/timeutil"
)

// RegisterAll adds every tool for the configured integrations.
func RegisterAll(s *server.MCPServer, deps Dependencies) {
	s.AddTool(dateTimeTool(), handleDateTime)

	if deps.Slack != nil {
		registerSlack(s, deps.Slack)
	}
	if deps.ClickUp != nil {
		registerClickUp(s, deps.ClickUp)
	}
	if deps.Timing != nil {
		registerTiming(s, deps.Timing)
	}
	if deps.Harvest != nil {
		registerHarvest(s, deps.Harvest)
	}
	if deps.GitHub != nil {
		registerGitHub(s, deps.GitHub)
	}
	if deps.Git != nil {
		registerGit(s, deps.Git)
	}
	if deps.Google != nil {
		registerGoogle(s, deps.Google)
	}
}

func dateTimeTool() mcp.Tool {
	return mcp.NewTool("getDateTime",
		mcp.WithDescription("Get current date and time in YYYY-MM-DD, ISO, timestamps in milliseconds and seconds, and the current timezone."),
	)
}

func handleDateTime(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(timeutil.Snapshot())
}
