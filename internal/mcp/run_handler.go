package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/memsearch-probe/internal/query"
	"github.com/giantswarm/memsearch-probe/internal/runner"
	"github.com/giantswarm/memsearch-probe/internal/server"
	"github.com/giantswarm/memsearch-probe/internal/transport"
)

const (
	maxProbeQueries     = 100
	defaultProbeDelay   = 100 * time.Millisecond
	maxProbeDelay       = 10 * time.Second
	defaultProbeQueries = 1
)

func handleSearchMemories(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	q, ok := args["query"].(string)
	if !ok || q == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	result := sc.Transport.Invoke(ctx, q, requestContextFromArgs(args, sc))
	return jsonResult(result)
}

func handleRunProbe(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	numQueries := defaultProbeQueries
	if n, ok := args["num_queries"].(float64); ok {
		numQueries = int(n)
	}
	if numQueries < 1 || numQueries > maxProbeQueries {
		return mcp.NewToolResultError(fmt.Sprintf("num_queries must be between 1 and %d", maxProbeQueries)), nil
	}

	shape := query.ShapeAny
	if name, ok := args["query_type"].(string); ok && name != "" {
		parsed, err := query.ParseShape(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		shape = parsed
	}

	var seed *int64
	if s, ok := args["seed"].(float64); ok {
		v := int64(s)
		seed = &v
	}

	delay := defaultProbeDelay
	if d, ok := args["delay_seconds"].(float64); ok {
		if d < 0 {
			return mcp.NewToolResultError("delay_seconds must not be negative"), nil
		}
		delay = time.Duration(d * float64(time.Second))
		if delay > maxProbeDelay {
			delay = maxProbeDelay
		}
	}

	r := runner.NewRunner(query.NewGenerator(sc.Pools, seed), sc.Transport, io.Discard, runner.Options{
		NumQueries: numQueries,
		Shape:      shape,
		Context:    requestContextFromArgs(args, sc),
		Delay:      delay,
		Seed:       seed,
		Address:    sc.Config.Address(),
		Service:    sc.Config.Service,
	})

	summary, err := r.Run(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("probe run failed: %v", err)), nil
	}

	slog.Info("probe run complete",
		"run_id", summary.RunID,
		"successful", summary.Successful,
		"failed", summary.Failed,
	)
	return jsonResult(summary)
}

func requestContextFromArgs(args map[string]any, sc *server.ServerContext) transport.RequestContext {
	rc := transport.RequestContext{UserID: sc.DefaultUserID}
	if v, ok := args["user_id"].(string); ok && v != "" {
		rc.UserID = v
	}
	if v, ok := args["agent_id"].(string); ok {
		rc.AgentID = v
	}
	if v, ok := args["run_id"].(string); ok {
		rc.RunID = v
	}
	return rc
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
