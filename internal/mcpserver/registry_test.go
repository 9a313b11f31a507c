package mcpserver

import (
	"context"
	"testing"
)

func TestRegistry_RejectsNilHandler(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("foo", nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestRegistry_RejectsDuplicateName(t *testing.T) {
	reg := NewRegistry()
	handler := func(context.Context, map[string]any) (any, error) { return nil, nil }
	if err := reg.Register("foo", handler); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register("foo", handler); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}

func TestRegistry_ToolsPreservesOrder(t *testing.T) {
	reg := NewRegistry()
	handler := func(context.Context, map[string]any) (any, error) { return nil, nil }
	if err := reg.Register("b", handler); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register("a", handler); err != nil {
		t.Fatal(err)
	}

	tools := reg.Tools()
	if len(tools) != 2 || tools[0] != "b" || tools[1] != "a" {
		t.Fatalf("expected registration order [b a], got %v", tools)
	}
}

func TestRegistry_HandlerForUnknownTool(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.HandlerFor("missing"); ok {
		t.Fatal("expected no handler for unregistered tool")
	}
}
