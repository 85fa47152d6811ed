package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/git"
)

func registerGit(s *server.MCPServer, scanner *git.Scanner) {
	s.AddTool(gitRepositoriesTool(), handleGitRepositories(scanner))
	s.AddTool(gitReflogsTool(), handleGitReflogs(scanner))
}

func gitRepositoriesTool() mcp.Tool {
	return mcp.NewTool("getLocalGitRepositories",
		mcp.WithDescription("Get all local git repositories."),
	)
}

func handleGitRepositories(scanner *git.Scanner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		repos, err := scanner.Repositories()
		if err != nil {
			return errorResult(err)
		}
		names := make([]string, 0, len(repos))
		for _, repo := range repos {
			names = append(names, repo.Name)
		}
		return jsonResult(names)
	}
}

func gitReflogsTool() mcp.Tool {
	return mcp.NewTool("getRepositoryReflogs",
		mcp.WithDescription("Get all available reflogs between two given dates."),
		mcp.WithString("since",
			mcp.Required(),
			mcp.Description("YYYY-MM-DD HH:MM:SS lower bound of range."),
		),
		mcp.WithString("until",
			mcp.Required(),
			mcp.Description("YYYY-MM-DD HH:MM:SS upper bound of range."),
		),
		mcp.WithBoolean("includeEmpty",
			mcp.Description("Whether to include repositories with no activity. Default to false."),
		),
	)
}

func handleGitReflogs(scanner *git.Scanner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		results, err := scanner.Reflogs(ctx,
			stringArg(args, "since"), stringArg(args, "until"),
			boolArg(args, "includeEmpty", false))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(results)
	}
}
