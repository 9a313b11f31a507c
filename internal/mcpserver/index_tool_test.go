package mcpserver

import (
	"context"
	"testing"
)

func TestParseIndexRequest_RequiresWorkspaceRoot(t *testing.T) {
	if _, err := parseIndexRequest(map[string]any{}); err == nil {
		t.Fatal("expected error when workspace_root is missing")
	}
}

func TestParseIndexRequest_OptionalFields(t *testing.T) {
	req, err := parseIndexRequest(map[string]any{
		"workspace_root": "/ws",
		"project_name":   "app",
		"out":            "-",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.WorkspaceRoot != "/ws" || req.ProjectName != "app" || req.Out != "-" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestRegisterIndexTool_PropagatesIndexerError(t *testing.T) {
	idx := &fakeIndexer{err: context.DeadlineExceeded}
	reg := NewRegistry()
	if err := RegisterIndexTool(reg, idx); err != nil {
		t.Fatal(err)
	}

	handler, ok := reg.HandlerFor(ToolIndexWorkspace)
	if !ok {
		t.Fatal("expected index_workspace to be registered")
	}

	_, err := handler(context.Background(), map[string]any{"workspace_root": "/ws"})
	if err == nil {
		t.Fatal("expected error to propagate from a failing Indexer")
	}
	var toolErr ToolError
	if _, ok := err.(ToolError); !ok {
		t.Fatalf("expected a ToolError, got %T: %v", err, toolErr)
	}
}
