// Package mcpserver exposes lsifgo's indexing pipeline as a single MCP
// stdio tool, grounded on the teacher's internal/mcp/registry (a
// name-to-handler map) and internal/mcp/transport/stdio.go (a
// line-delimited JSON-RPC loop over stdin/stdout). Trimmed to the one
// tool spec §11.7 calls for, dropping the teacher's OpenAPI-described
// multi-tool surface (see DESIGN.md).
package mcpserver

import (
	"context"
	"fmt"
	"sync"
)

// Handler answers one tool call. input is the call's decoded JSON
// arguments.
type Handler func(ctx context.Context, input map[string]any) (any, error)

// Registry maps tool names to Handlers, preserving registration order
// for tools/list responses — adapted directly from the teacher's
// internal/mcp/registry.Registry.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	order    []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds tool under name. It is an error to register the same
// name twice.
func (r *Registry) Register(name string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("mcpserver: handler is required for %q", name)
	}
	if name == "" {
		return fmt.Errorf("mcpserver: tool name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("mcpserver: tool already registered: %s", name)
	}
	r.handlers[name] = handler
	r.order = append(r.order, name)
	return nil
}

// HandlerFor looks up a registered tool by name.
func (r *Registry) HandlerFor(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Tools lists registered tool names in registration order.
func (r *Registry) Tools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
