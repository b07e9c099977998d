package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/memsearch-probe/internal/server"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// search_memories
	searchTool := mcp.NewTool("search_memories",
		mcp.WithDescription("Send one query to the SearchMemories RPC and return the normalized result"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text"),
		),
		mcp.WithString("user_id",
			mcp.Description("User ID for context (default: server default user)"),
		),
		mcp.WithString("agent_id",
			mcp.Description("Agent ID for context (optional)"),
		),
		mcp.WithString("run_id",
			mcp.Description("Run ID for context (optional)"),
		),
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearchMemories(ctx, request, sc)
	})

	// run_probe
	probeTool := mcp.NewTool("run_probe",
		mcp.WithDescription("Run a batch of randomized queries against SearchMemories and return the run summary"),
		mcp.WithNumber("num_queries",
			mcp.Description("Number of queries to send (default: 1, max: 100)"),
		),
		mcp.WithString("query_type",
			mcp.Description("Query shape: any, simple, phrase or sentence (default: any)"),
		),
		mcp.WithNumber("seed",
			mcp.Description("Random seed for reproducible queries (optional)"),
		),
		mcp.WithNumber("delay_seconds",
			mcp.Description("Pause between requests in seconds (default: 0.1)"),
		),
		mcp.WithString("user_id",
			mcp.Description("User ID for context (default: server default user)"),
		),
		mcp.WithString("agent_id",
			mcp.Description("Agent ID for context (optional)"),
		),
		mcp.WithString("run_id",
			mcp.Description("Run ID for context (optional)"),
		),
	)
	s.AddTool(probeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRunProbe(ctx, request, sc)
	})

	// list_word_pools
	poolsTool := mcp.NewTool("list_word_pools",
		mcp.WithDescription("List the word pools randomized queries are built from"),
	)
	s.AddTool(poolsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListWordPools(ctx, request, sc)
	})

	return nil
}
