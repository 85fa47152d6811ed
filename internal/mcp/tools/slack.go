package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jharlow/activity-mcp/internal/slack"
)

func registerSlack(s *server.MCPServer, client *slack.Client) {
	s.AddTool(slackUserTool(), handleSlackUser(client))
	s.AddTool(slackMessagesTool(), handleSlackMessages(client))
	s.AddTool(slackConversationsTool(), handleSlackConversations(client))
}

func slackUserTool() mcp.Tool {
	return mcp.NewTool("getSlackUser",
		mcp.WithDescription("Get currently authenticated Slack User information."),
	)
}

func handleSlackUser(client *slack.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identity, err := client.Identity(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(identity)
	}
}

func slackMessagesTool() mcp.Tool {
	return mcp.NewTool("getSlackMessages",
		mcp.WithDescription("Get Slack messages on a particular date range. Can filter to messages sent in particular channels, sent by particular users, or that contain a particular substring. To get messages on a single day, use the same day for both bounds."),
		mcp.WithString("dateRangeStart",
			mcp.Required(),
			mcp.Description("YYYY-MM-DD for when the date range should start"),
		),
		mcp.WithString("dateRangeEnd",
			mcp.Required(),
			mcp.Description("YYYY-MM-DD for when the date range should end"),
		),
		mcp.WithString("search",
			mcp.Description("Search query. Matches messages that contain all words included in."),
		),
		mcp.WithArray("channelNames",
			mcp.Description("List of channel names to filter in."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("userIds",
			mcp.Description("List of user IDs to filter to."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func handleSlackMessages(client *slack.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		messages, err := client.SearchMessages(ctx, slack.SearchParams{
			DateRangeStart: stringArg(args, "dateRangeStart"),
			DateRangeEnd:   stringArg(args, "dateRangeEnd"),
			Search:         stringArg(args, "search"),
			ChannelNames:   stringSliceArg(args, "channelNames"),
			UserIDs:        stringSliceArg(args, "userIds"),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(messages)
	}
}

func slackConversationsTool() mcp.Tool {
	return mcp.NewTool("getSlackConversations",
		mcp.WithDescription("Get all available Slack conversations."),
		mcp.WithBoolean("includeArchived",
			mcp.Description("Whether to include archived channels. Default to false."),
		),
		mcp.WithBoolean("includeDirectMessages",
			mcp.Description("Whether to include direct messages."),
		),
		mcp.WithBoolean("includeGroupMessages",
			mcp.Description("Whether to include group messages."),
		),
		mcp.WithBoolean("includePublicChannels",
			mcp.Description("Whether to include public channels."),
		),
		mcp.WithBoolean("includePrivateChannels",
			mcp.Description("Whether to include private channels."),
		),
	)
}

func handleSlackConversations(client *slack.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(req)
		conversations, err := client.ListConversations(ctx, slack.ConversationFilter{
			IncludeArchived:        boolArg(args, "includeArchived", false),
			IncludeDirectMessages:  boolArg(args, "includeDirectMessages", false),
			IncludeGroupMessages:   boolArg(args, "includeGroupMessages", false),
			IncludePublicChannels:  boolArg(args, "includePublicChannels", false),
			IncludePrivateChannels: boolArg(args, "includePrivateChannels", false),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(conversations)
	}
}
