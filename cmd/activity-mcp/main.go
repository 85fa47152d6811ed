// activity-mcp serves MCP tools over stdio for reconstructing what the
// user worked on: Slack, ClickUp, Harvest, GitHub, Google Calendar,
// local git repositories, and the desktop activity log.
//
// Integrations come up independently. A missing credential disables that
// integration's tools and the rest keep working.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/clickup"
	"github.com/jharlow/activity-mcp/internal/git"
	"github.com/jharlow/activity-mcp/internal/github"
	"github.com/jharlow/activity-mcp/internal/google"
	"github.com/jharlow/activity-mcp/internal/harvest"
	"github.com/jharlow/activity-mcp/internal/logging"
	"github.com/jharlow/activity-mcp/internal/mcp/tools"
	"github.com/jharlow/activity-mcp/internal/slack"
	"github.com/jharlow/activity-mcp/internal/timing"
)

func main() {
	// Load .env file - try executable's parent dir (repo root), then exe dir, then cwd
	envPaths := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		envPaths = append([]string{
			filepath.Join(filepath.Dir(exeDir), ".env"), // parent of bin/ = repo root
			filepath.Join(exeDir, ".env"),
		}, envPaths...)
	}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	deps := buildDependencies(context.Background())

	s := server.NewMCPServer(
		"activity-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	tools.RegisterAll(s, deps)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// buildDependencies constructs every integration client that has
// credentials configured and logs the ones skipped.
func buildDependencies(ctx context.Context) tools.Dependencies {
	var deps tools.Dependencies
	var err error

	if deps.Slack, err = slack.NewClient(); err != nil {
		logging.Info("startup", "slack tools disabled: %v", err)
	}
	if deps.ClickUp, err = clickup.NewClient(); err != nil {
		logging.Info("startup", "clickup tools disabled: %v", err)
	}
	if deps.Harvest, err = harvest.NewClient(); err != nil {
		logging.Info("startup", "harvest tools disabled: %v", err)
	}
	if deps.GitHub, err = github.NewClient(); err != nil {
		logging.Info("startup", "github tools disabled: %v", err)
	}
	if deps.Google, err = google.NewClient(ctx); err != nil {
		logging.Info("startup", "google tools disabled: %v", err)
	}
	if deps.Git, err = git.NewScanner(); err != nil {
		logging.Info("startup", "git tools disabled: %v", err)
	}
	if deps.Timing, err = timing.NewStore(); err != nil {
		logging.Info("startup", "desktop activity tools disabled: %v", err)
	}
	return deps
}
