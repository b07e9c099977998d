// Package testutil provides shared test helpers.
package testutil

import (
	"context"

	"github.com/giantswarm/memsearch-probe/internal/transport"
)

// StubTransport is a configurable transport.Transport that never spawns a
// process.
type StubTransport struct {
	// Responses maps queries to canned response bodies.
	Responses map[string]string

	// DefaultResponse is parsed when no matching key is found in Responses.
	// An empty value means `{"memories":[]}`.
	DefaultResponse string

	// FailWith, when set, makes every call fail with this message.
	FailWith string

	// Calls tracks the number of Invoke calls.
	Calls int

	// Queries records every query in call order.
	Queries []string

	// LastContext stores the most recent request context for inspection.
	LastContext transport.RequestContext
}

func (s *StubTransport) Invoke(_ context.Context, query string, rc transport.RequestContext) transport.Result {
	s.Calls++
	s.Queries = append(s.Queries, query)
	s.LastContext = rc

	if s.FailWith != "" {
		return transport.Failed(query, s.FailWith)
	}

	if body, ok := s.Responses[query]; ok {
		return transport.ParseResponse(query, []byte(body))
	}

	if s.DefaultResponse != "" {
		return transport.ParseResponse(query, []byte(s.DefaultResponse))
	}

	return transport.ParseResponse(query, []byte(`{"memories":[]}`))
}

// TimeoutTransport fails every call the way an expired invocation does.
func TimeoutTransport() *StubTransport {
	return &StubTransport{FailWith: transport.TimeoutMessage}
}
