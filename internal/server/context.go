package server

import (
	"github.com/giantswarm/memsearch-probe/internal/config"
	"github.com/giantswarm/memsearch-probe/internal/query"
	"github.com/giantswarm/memsearch-probe/internal/transport"
)

// ServerContext holds shared dependencies for MCP tool handlers.
type ServerContext struct {
	Config    config.Config
	Transport transport.Transport
	Pools     *query.Pools

	// DefaultUserID is used when a tool call does not name a user.
	DefaultUserID string
}
