// Package transport performs SearchMemories invocations and normalizes their
// outcome into Result values.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// TimeoutMessage is the error message of a result whose invocation exceeded
// its time budget.
const TimeoutMessage = "Request timed out"

// Transport performs one SearchMemories invocation.
// Invoke never returns an error: every failure is reported as a Result with
// Success set to false.
type Transport interface {
	Invoke(ctx context.Context, query string, rc RequestContext) Result
}

// RequestContext holds the optional identifiers that scope a search.
type RequestContext struct {
	UserID  string `json:"user_id,omitempty"`
	AgentID string `json:"agent_id,omitempty"`
	RunID   string `json:"run_id,omitempty"`
}

// IsEmpty reports whether no field is set.
func (rc RequestContext) IsEmpty() bool {
	return rc.UserID == "" && rc.AgentID == "" && rc.RunID == ""
}

type searchRequest struct {
	Query   string          `json:"query"`
	Context *RequestContext `json:"context,omitempty"`
}

// BuildRequest encodes the SearchMemories request document. The context
// object is omitted entirely when rc has no fields set.
func BuildRequest(query string, rc RequestContext) ([]byte, error) {
	req := searchRequest{Query: query}
	if !rc.IsEmpty() {
		req.Context = &rc
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return data, nil
}

// Result is the normalized outcome of one invocation. Exactly one of the
// success fields (Response, MemoryCount) or failure fields (Error, RawOutput)
// is meaningful, selected by Success.
type Result struct {
	Query       string         `json:"query"`
	Success     bool           `json:"success"`
	Response    map[string]any `json:"response,omitempty"`
	MemoryCount int            `json:"memory_count"`
	Error       string         `json:"error,omitempty"`
	RawOutput   string         `json:"raw_output,omitempty"`
	Duration    time.Duration  `json:"duration"`

	body []byte
}

// Failed builds a failure result.
func Failed(query, message string) Result {
	return Result{Query: query, Error: message}
}

// ParseResponse turns captured response output into a Result. Output that is
// not a JSON object yields a failure that keeps the raw text.
func ParseResponse(query string, output []byte) Result {
	var payload map[string]any
	err := json.Unmarshal(output, &payload)
	if err == nil && payload == nil {
		err = fmt.Errorf("response is not a JSON object")
	}
	if err != nil {
		return Result{
			Query:     query,
			Error:     fmt.Sprintf("Failed to parse response: %v", err),
			RawOutput: string(output),
		}
	}

	count := 0
	if memories := gjson.GetBytes(output, "memories"); memories.IsArray() {
		count = len(memories.Array())
	}

	return Result{
		Query:       query,
		Success:     true,
		Response:    payload,
		MemoryCount: count,
		body:        output,
	}
}

// MemorySummaries returns content.summary of up to limit memories, using
// "N/A" for memories without one.
func (r Result) MemorySummaries(limit int) []string {
	memories := gjson.GetBytes(r.body, "memories")
	if !memories.IsArray() {
		return nil
	}

	var summaries []string
	for _, m := range memories.Array() {
		if len(summaries) >= limit {
			break
		}
		summary := m.Get("content.summary")
		if !summary.Exists() || summary.Type == gjson.Null {
			summaries = append(summaries, "N/A")
			continue
		}
		summaries = append(summaries, summary.String())
	}
	return summaries
}
