package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/github"
)

func registerGitHub(s *server.MCPServer, client *github.Client) {
	s.AddTool(gitHubUserTool(), handleGitHubUser(client))
	s.AddTool(gitHubContributionsTool(), handleGitHubContributions(client))
}

func gitHubUserTool() mcp.Tool {
	return mcp.NewTool("getGitHubUser",
		mcp.WithDescription("Get currently authenticated username and name for GitHub."),
	)
}

func handleGitHubUser(client *github.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		viewer, err := client.Viewer(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(viewer)
	}
}

func gitHubContributionsTool() mcp.Tool {
	return mcp.NewTool("getGitHubUserContributions",
		mcp.WithDescription("Get pull requests, reviews, and commit counts by repository on GitHub."),
		mcp.WithString("username",
			mcp.Required(),
			mcp.Description("GitHub username for contributions. Use getGitHubUser under 'login' to see the current username."),
		),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("ISO datetime for start of date range. Sample: 2025-05-26T09:49:07Z"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("ISO datetime for end of date range. Sample: 2025-05-26T09:49:07Z"),
		),
	)
}

func handleGitHubContributions(client *github.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		contributions, err := client.UserContributions(ctx,
			stringArg(args, "username"), stringArg(args, "from"), stringArg(args, "to"))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(contributions)
	}
}
