package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor extracts declarations and references from a Python
// syntax tree, grounded on the teacher's Python extractor's node-kind
// dispatch table.
type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, path string) (*File, error) {
	file := &File{Path: path, Language: "python"}
	ctx := &walkContext{Source: source, File: file}

	eng := newEngine(map[string]NodeHandler{
		"import_statement":      e.extractImport,
		"import_from_statement": e.extractFromImport,
		"function_definition":   e.extractFunction,
		"class_definition":      e.extractClass,
		"assignment":            e.extractAssignment,
		"for_statement":         e.extractFor,
		"call":                  e.extractCall,
		"attribute":             e.extractAttribute,
	})
	eng.walk(ctx, root)

	return file, nil
}

func (e *PythonExtractor) extractImport(ctx *walkContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "dotted_name", "identifier":
			ctx.File.Imports = append(ctx.File.Imports, Import{Module: ctx.text(child)})
		case "aliased_import":
			var module, alias string
			for j := uint(0); j < child.ChildCount(); j++ {
				sub := child.Child(j)
				if sub.Kind() == "dotted_name" || sub.Kind() == "identifier" {
					if module == "" {
						module = ctx.text(sub)
					} else {
						alias = ctx.text(sub)
					}
				}
			}
			ctx.File.Imports = append(ctx.File.Imports, Import{Module: module, Alias: alias})
		}
	}
	return true
}

func (e *PythonExtractor) extractFromImport(ctx *walkContext, node *sitter.Node) bool {
	var module string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "relative_import":
			module = strings.TrimLeft(ctx.text(child), ".")
		case "dotted_name", "identifier":
			if module == "" {
				module = ctx.text(child)
			}
		}
	}
	if module != "" {
		ctx.File.Imports = append(ctx.File.Imports, Import{Module: module})
	}
	return true
}

func (e *PythonExtractor) extractFunction(ctx *walkContext, node *sitter.Node) bool {
	name := ctx.childText(node, "identifier")
	if name == "" {
		return false
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		ctx.appendLocalNames(params)
	}

	fullName := name
	if ctx.File.PackageName != "" {
		fullName = ctx.File.PackageName + "." + name
	}
	ctx.File.LocalNames = append(ctx.File.LocalNames, name)
	ctx.File.Definitions = append(ctx.File.Definitions, Definition{
		Name:     name,
		FullName: fullName,
		Kind:     KindFunction,
		Location: ctx.location(node),
	})
	return false
}

func (e *PythonExtractor) extractClass(ctx *walkContext, node *sitter.Node) bool {
	name := ctx.childText(node, "identifier")
	if name == "" {
		return false
	}
	fullName := name
	if ctx.File.PackageName != "" {
		fullName = ctx.File.PackageName + "." + name
	}
	ctx.File.LocalNames = append(ctx.File.LocalNames, name)
	ctx.File.Definitions = append(ctx.File.Definitions, Definition{
		Name:              name,
		FullName:          fullName,
		Kind:              KindClass,
		Location:          ctx.location(node),
		IsTypeDeclaration: true,
	})

	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		e.extractSuperclasses(ctx, superclasses)
	}
	return false
}

func (e *PythonExtractor) extractSuperclasses(ctx *walkContext, node *sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "attribute":
			ctx.File.References = append(ctx.File.References, Reference{
				Name:     ctx.text(child),
				Location: ctx.location(child),
				IsType:   true,
			})
		}
	}
}

func (e *PythonExtractor) extractAssignment(ctx *walkContext, node *sitter.Node) bool {
	if left := node.ChildByFieldName("left"); left != nil {
		ctx.appendLocalNames(left)
	}
	return false
}

func (e *PythonExtractor) extractFor(ctx *walkContext, node *sitter.Node) bool {
	if left := node.ChildByFieldName("left"); left != nil {
		ctx.appendLocalNames(left)
	}
	return false
}

func (e *PythonExtractor) extractCall(ctx *walkContext, node *sitter.Node) bool {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	switch fn.Kind() {
	case "identifier", "attribute":
		ctx.File.References = append(ctx.File.References, Reference{
			Name:     ctx.text(fn),
			Location: ctx.location(fn),
		})
	}
	return false
}

func (e *PythonExtractor) extractAttribute(ctx *walkContext, node *sitter.Node) bool {
	if parent := node.Parent(); parent != nil && parent.Kind() == "call" {
		return false
	}
	ctx.File.References = append(ctx.File.References, Reference{
		Name:     ctx.text(node),
		Location: ctx.location(node),
	})
	return true
}
