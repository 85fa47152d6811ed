// Package tools registers the MCP tool surface over the integration
// clients. Every tool returns its result as a JSON text block.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jharlow/activity-mcp/internal/clickup"
	"github.com/jharlow/activity-mcp/internal/git"
	"github.com/jharlow/activity-mcp/internal/github"
	"github.com/jharlow/activity-mcp/internal/google"
	"github.com/jharlow/activity-mcp/internal/harvest"
	"github.com/jharlow/activity-mcp/internal/slack"
	"github.com/jharlow/activity-mcp/internal/timing"
)

// Dependencies holds the integration clients. A nil client means the
// integration is not configured and its tools are not registered.
type Dependencies struct {
	ClickUp *clickup.Client
	Slack   *slack.Client
	Harvest *harvest.Client
	GitHub  *github.Client
	Google  *google.Client
	Git     *git.Scanner
	Timing  *timing.Store
}

// jsonResult marshals v into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func arguments(req mcp.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string, fallback bool) bool {
	if b, ok := args[key].(bool); ok {
		return b
	}
	return fallback
}

// intArg reads a numeric argument. JSON numbers decode as float64.
func intArg(args map[string]any, key string) int {
	f, _ := args[key].(float64)
	return int(f)
}

func int64Arg(args map[string]any, key string) (int64, bool) {
	f, ok := args[key].(float64)
	return int64(f), ok
}

func float64Arg(args map[string]any, key string) (float64, bool) {
	f, ok := args[key].(float64)
	return f, ok
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func int64SliceArg(args map[string]any, key string) []int64 {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, int64(f))
		}
	}
	return out
}
