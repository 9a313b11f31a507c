package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Extractor turns a parsed syntax tree into a File.
type Extractor interface {
	Extract(root *sitter.Node, source []byte, path string) (*File, error)
}

// NodeHandler processes a node for a language-specific extractor.
// Returning true tells the walker the handler already covered this
// node's children.
type NodeHandler func(ctx *walkContext, node *sitter.Node) bool

// walkContext carries the state shared by all handlers of one walk.
type walkContext struct {
	Source            []byte
	File              *File
	processedChildren bool
}

func (c *walkContext) resetProcessedChildren() { c.processedChildren = false }

// engine walks a syntax tree and dispatches node handlers by kind.
type engine struct {
	handlers map[string]NodeHandler
}

func newEngine(handlers map[string]NodeHandler) *engine {
	return &engine{handlers: handlers}
}

func (e *engine) walk(ctx *walkContext, node *sitter.Node) {
	if node == nil {
		return
	}

	ctx.resetProcessedChildren()
	stop := false
	if handler, ok := e.handlers[node.Kind()]; ok {
		stop = handler(ctx, node)
	}

	if !stop && !ctx.processedChildren {
		for i := uint(0); i < node.ChildCount(); i++ {
			e.walk(ctx, node.Child(i))
		}
	}
}

func (c *walkContext) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *walkContext) location(node *sitter.Node) Location {
	return nodeLocation(node)
}

// nodeLocation converts a tree-sitter node's byte-range position into a
// 1-based Location spanning its full extent.
func nodeLocation(node *sitter.Node) Location {
	start, end := node.StartPosition(), node.EndPosition()
	return Location{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

func (c *walkContext) childText(node *sitter.Node, kind string) string {
	if node == nil {
		return ""
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return c.text(child)
		}
	}
	return ""
}

func (c *walkContext) appendLocalNames(node *sitter.Node) {
	if node == nil {
		return
	}
	if node.Kind() == "identifier" {
		c.File.LocalNames = append(c.File.LocalNames, c.text(node))
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c.appendLocalNames(node.Child(i))
	}
}
