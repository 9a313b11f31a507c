package mcpserver

// ToolDefinition describes a tool for the MCP "tools/list" response,
// grounded on the teacher's internal/mcp/schema.BuildToolDefinitions.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// ToolDefinitions lists the tools this server exposes.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolIndexWorkspace,
			Description: "Index a workspace and emit an LSIF dump, returning per-project summaries.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"workspace_root": map[string]any{"type": "string", "description": "absolute path to the workspace root"},
					"project_name":   map[string]any{"type": "string", "description": "overrides the configured entry project"},
					"out":            map[string]any{"type": "string", "description": "output path, or \"-\" for stdout"},
				},
				"required": []string{"workspace_root"},
			},
		},
	}
}
