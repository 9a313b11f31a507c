package mcpserver

import (
	"context"

	"lsifgo/internal/core/ports"
)

// ToolIndexWorkspace is the sole tool this server exposes.
const ToolIndexWorkspace = "index_workspace"

// IndexRequest is index_workspace's decoded argument set.
type IndexRequest struct {
	WorkspaceRoot string `json:"workspace_root"`
	ProjectName   string `json:"project_name,omitempty"`
	Out           string `json:"out,omitempty"`
}

// IndexResult is index_workspace's structured result: one
// ports.ProjectSummary per project walked, in the order the Driver
// closed them.
type IndexResult struct {
	Summaries []ports.ProjectSummary `json:"summaries"`
}

// Indexer runs one full pipeline pass for req. Implemented by the CLI's
// closure around pipeline.Driver.Run so this package never imports the
// core pipeline directly — mirroring the teacher's
// tools/scan.HandleRun delegating to an injected adapter rather than
// importing internal/core/app itself.
type Indexer interface {
	Index(ctx context.Context, req IndexRequest) (IndexResult, error)
}

// RegisterIndexTool wires ToolIndexWorkspace into reg, backed by idx.
func RegisterIndexTool(reg *Registry, idx Indexer) error {
	return reg.Register(ToolIndexWorkspace, func(ctx context.Context, input map[string]any) (any, error) {
		req, err := parseIndexRequest(input)
		if err != nil {
			return nil, err
		}
		result, err := idx.Index(ctx, req)
		if err != nil {
			return nil, ToolError{Code: ErrorInternal, Message: err.Error()}
		}
		return result, nil
	})
}

func parseIndexRequest(input map[string]any) (IndexRequest, error) {
	root, _ := input["workspace_root"].(string)
	if root == "" {
		return IndexRequest{}, ToolError{Code: ErrorInvalidArgument, Message: "workspace_root is required"}
	}
	name, _ := input["project_name"].(string)
	out, _ := input["out"].(string)
	return IndexRequest{WorkspaceRoot: root, ProjectName: name, Out: out}, nil
}
