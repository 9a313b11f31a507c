package mcpserver

import (
	"context"
	"os"

	"lsifgo/internal/core/config"
)

// Server bundles a tool Registry with the stdio transport that serves
// it, grounded on the teacher's internal/mcp/runtime.Server wiring its
// Registry into a chosen Adapter.
type Server struct {
	transport *Stdio
}

// New builds a Server exposing index_workspace, backed by idx.
func New(cfg config.MCPConfig, idx Indexer) (*Server, error) {
	name := cfg.ServerName
	if name == "" {
		name = "lsifgo"
	}

	reg := NewRegistry()
	if err := RegisterIndexTool(reg, idx); err != nil {
		return nil, err
	}

	return &Server{transport: NewStdio(name, reg, cfg)}, nil
}

// Run serves tool calls over stdin/stdout until ctx is cancelled or
// stdin reaches EOF.
func (s *Server) Run(ctx context.Context) error {
	return s.transport.Serve(ctx, os.Stdin, os.Stdout)
}
