package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"lsifgo/internal/core/config"
	"lsifgo/internal/shared/util"
)

const protocolVersion = "2025-06-18"

// Stdio serves tool calls as line-delimited JSON-RPC 2.0 over an
// arbitrary reader/writer pair (stdin/stdout in production, buffers in
// tests) — adapted from the teacher's internal/mcp/transport.Stdio,
// trimmed of its legacy non-RPC {tool,args} framing since lsifgo never
// shipped that wire format.
type Stdio struct {
	name    string
	reg     *Registry
	limiter *util.Limiter

	mu      sync.Mutex
	running bool
}

// NewStdio builds a Stdio transport serving reg's tools under name,
// rate-limited per cfg when cfg.RateLimitEnabled.
func NewStdio(name string, reg *Registry, cfg config.MCPConfig) *Stdio {
	s := &Stdio{name: name, reg: reg}
	if cfg.RateLimitEnabled {
		rate := float64(cfg.RequestsPerMinute) / 60.0
		s.limiter = util.NewLimiter(rate, cfg.Burst)
	}
	return s
}

// Serve reads JSON-RPC requests from r and writes responses to w until
// ctx is cancelled or r reaches EOF.
func (s *Stdio) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("mcpserver: stdio transport already running")
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	decoder := json.NewDecoder(bufio.NewReader(r))
	writer := bufio.NewWriter(w)
	encoder := json.NewEncoder(writer)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req rpcRequest
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if req.Method == "notifications/initialized" {
			continue
		}

		if s.limiter != nil && !s.limiter.Allow(1) {
			if err := s.reply(encoder, writer, rpcResponse{
				JSONRPC: "2.0", ID: req.ID,
				Error: &rpcError{Code: -32005, Message: "rate limit exceeded"},
			}); err != nil {
				return err
			}
			continue
		}

		resp := s.dispatch(ctx, req)
		if err := s.reply(encoder, writer, resp); err != nil {
			return err
		}
	}
}

func (s *Stdio) dispatch(ctx context.Context, req rpcRequest) rpcResponse {
	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": s.name, "version": "v1"},
		}
	case "ping":
		resp.Result = map[string]any{}
	case "tools/list":
		defs := ToolDefinitions()
		tools := make([]map[string]any, 0, len(defs))
		for _, def := range defs {
			tools = append(tools, map[string]any{
				"name":        def.Name,
				"description": def.Description,
				"inputSchema": def.InputSchema,
			})
		}
		resp.Result = map[string]any{"tools": tools}
	case "tools/call":
		resp.Result = s.callTool(ctx, req.Params)
	default:
		resp.Error = &rpcError{Code: -32601, Message: "method not found"}
	}
	return resp
}

func (s *Stdio) callTool(ctx context.Context, params map[string]any) map[string]any {
	name, _ := params["name"].(string)
	args, _ := params["arguments"].(map[string]any)
	if args == nil {
		args = map[string]any{}
	}

	handler, ok := s.reg.HandlerFor(name)
	if !ok {
		return errorContent(ToolError{Code: ErrorInvalidArgument, Message: fmt.Sprintf("unknown tool %q", name)})
	}

	result, err := handler(ctx, args)
	if err != nil {
		return errorContent(normalizeToolError(err))
	}
	text := mustJSONText(result)
	return map[string]any{
		"isError":           false,
		"structuredContent": result,
		"content":           []map[string]any{{"type": "text", "text": text}},
	}
}

func errorContent(toolErr ToolError) map[string]any {
	return map[string]any{
		"isError": true,
		"content": []map[string]any{{"type": "text", "text": fmt.Sprintf("%s: %s", toolErr.Code, toolErr.Message)}},
	}
}

func (s *Stdio) reply(encoder *json.Encoder, writer *bufio.Writer, resp rpcResponse) error {
	if err := encoder.Encode(resp); err != nil {
		return err
	}
	return writer.Flush()
}

type rpcRequest struct {
	JSONRPC string         `json:"jsonrpc,omitempty"`
	ID      any            `json:"id,omitempty"`
	Method  string         `json:"method,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func mustJSONText(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func normalizeToolError(err error) ToolError {
	var toolErr ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	return ToolError{Code: ErrorInternal, Message: err.Error()}
}
