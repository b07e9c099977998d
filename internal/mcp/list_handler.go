package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/memsearch-probe/internal/server"
)

func handleListWordPools(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	if sc.Pools == nil {
		return mcp.NewToolResultError("word pools are not configured"), nil
	}
	return jsonResult(sc.Pools)
}
