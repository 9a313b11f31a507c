package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// GoExtractor extracts declarations and references from a Go syntax
// tree, grounded on the node-kind dispatch table used by the teacher's
// own Go extractor (package/import/function/method/type declarations,
// with selector expressions classified as qualified references).
type GoExtractor struct{}

func (e *GoExtractor) Extract(root *sitter.Node, source []byte, path string) (*File, error) {
	file := &File{Path: path, Language: "go"}
	ctx := &walkContext{Source: source, File: file}

	eng := newEngine(map[string]NodeHandler{
		"package_clause":        e.extractPackage,
		"import_declaration":    e.extractImports,
		"function_declaration":  e.extractFunction,
		"method_declaration":    e.extractMethod,
		"type_declaration":      e.extractType,
		"short_var_declaration": e.extractVarDecl,
		"var_declaration":       e.extractVarDecl,
		"const_declaration":     e.extractVarDecl,
		"parameter_declaration": e.extractParam,
		"range_clause":          e.extractRange,
		"identifier":            e.captureLocal,
		"type_identifier":       e.captureLocal,
		"field_identifier":      e.captureLocal,
		"selector_expression":   e.extractReference,
		"qualified_type":        e.extractReference,
	})
	eng.walk(ctx, root)

	return file, nil
}

func (e *GoExtractor) captureLocal(ctx *walkContext, node *sitter.Node) bool {
	name := ctx.text(node)
	if name == "" || name == "_" || name == "." {
		return true
	}
	for _, imp := range ctx.File.Imports {
		if imp.Alias == name || ModuleBase(imp.Module) == name {
			ctx.File.References = append(ctx.File.References, Reference{
				Name:     name,
				Location: ctx.location(node),
			})
			return true
		}
	}
	ctx.File.LocalNames = append(ctx.File.LocalNames, name)
	return true
}

func (e *GoExtractor) extractPackage(ctx *walkContext, node *sitter.Node) bool {
	ctx.File.PackageName = ctx.childText(node, "package_identifier")
	return true
}

func (e *GoExtractor) extractImports(ctx *walkContext, node *sitter.Node) bool {
	e.walkImports(ctx, node)
	return true
}

func (e *GoExtractor) walkImports(ctx *walkContext, node *sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "import_spec" {
			e.walkImports(ctx, child)
			continue
		}
		var alias, path string
		for j := uint(0); j < child.ChildCount(); j++ {
			spec := child.Child(j)
			switch spec.Kind() {
			case "package_identifier", "_", ".":
				alias = ctx.text(spec)
			case "interpreted_string_literal", "raw_string_literal":
				path = strings.Trim(ctx.text(spec), "\"`")
			}
		}
		if path != "" {
			ctx.File.Imports = append(ctx.File.Imports, Import{Module: path, Alias: alias})
		}
	}
}

func (e *GoExtractor) extractFunction(ctx *walkContext, node *sitter.Node) bool {
	e.extractCallable(ctx, node, KindFunction)
	return false
}

func (e *GoExtractor) extractMethod(ctx *walkContext, node *sitter.Node) bool {
	if receiver := node.ChildByFieldName("receiver"); receiver != nil {
		e.extractParam(ctx, receiver)
	}
	e.extractCallable(ctx, node, KindMethod)
	return false
}

func (e *GoExtractor) extractCallable(ctx *walkContext, node *sitter.Node, kind DefinitionKind) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := ctx.text(nameNode)
	if name == "" {
		return
	}
	ctx.File.LocalNames = append(ctx.File.LocalNames, name)

	if params := node.ChildByFieldName("parameters"); params != nil {
		e.extractSignatureTypes(ctx, params)
	}
	if results := node.ChildByFieldName("result"); results != nil {
		e.extractSignatureTypes(ctx, results)
	}

	fullName := name
	if ctx.File.PackageName != "" {
		fullName = ctx.File.PackageName + "." + name
	}

	ctx.File.Definitions = append(ctx.File.Definitions, Definition{
		Name:     name,
		FullName: fullName,
		Kind:     kind,
		Location: ctx.location(node),
	})
}

func (e *GoExtractor) extractSignatureTypes(ctx *walkContext, node *sitter.Node) {
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Kind() {
		case "selector_expression", "qualified_type":
			e.extractReference(ctx, n)
			return
		case "type_identifier":
			e.captureLocal(ctx, n)
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
}

func (e *GoExtractor) extractType(ctx *walkContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "type_spec" {
			e.extractTypeSpec(ctx, child)
		} else if child.Kind() == "type_alias" {
			e.extractTypeAlias(ctx, child)
		}
	}
	return true
}

func (e *GoExtractor) extractTypeSpec(ctx *walkContext, node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := ctx.text(nameNode)
	if name == "" {
		return
	}
	ctx.File.LocalNames = append(ctx.File.LocalNames, name)

	kind := DefinitionKind(KindType)
	isInterface := false
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "interface_type" {
			isInterface = true
		}
	}
	if isInterface {
		kind = KindInterface
	}

	fullName := name
	if ctx.File.PackageName != "" {
		fullName = ctx.File.PackageName + "." + name
	}
	ctx.File.Definitions = append(ctx.File.Definitions, Definition{
		Name:              name,
		FullName:          fullName,
		Kind:              kind,
		Location:          ctx.location(node),
		IsTypeDeclaration: true,
	})

	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		e.extractSignatureTypes(ctx, typeNode)
	}
}

// extractTypeAlias handles "type A = B" (spec's alias reporting: a
// reference to B that denotes the same declaration as A).
func (e *GoExtractor) extractTypeAlias(ctx *walkContext, node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	typeNode := node.ChildByFieldName("value")
	if typeNode == nil {
		typeNode = node.ChildByFieldName("type")
	}
	if nameNode == nil || typeNode == nil {
		return
	}
	name := ctx.text(nameNode)
	aliasOf := ctx.text(typeNode)
	if name == "" || aliasOf == "" {
		return
	}
	ctx.File.LocalNames = append(ctx.File.LocalNames, name)
	fullName := name
	if ctx.File.PackageName != "" {
		fullName = ctx.File.PackageName + "." + name
	}
	ctx.File.Definitions = append(ctx.File.Definitions, Definition{
		Name:              name,
		FullName:          fullName,
		Kind:              KindType,
		Location:          ctx.location(node),
		IsTypeDeclaration: true,
	})
	ctx.File.References = append(ctx.File.References, Reference{
		Name:      aliasOf,
		Location:  ctx.location(typeNode),
		IsType:    true,
		IsAliased: true,
		AliasOf:   name,
	})
}

func (e *GoExtractor) extractVarDecl(ctx *walkContext, node *sitter.Node) bool {
	if node.Kind() == "short_var_declaration" {
		if left := node.ChildByFieldName("left"); left != nil {
			ctx.appendLocalNames(left)
		}
		return false
	}
	ctx.appendLocalNames(node)
	ctx.processedChildren = true
	return true
}

func (e *GoExtractor) extractParam(ctx *walkContext, node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == "identifier" {
			ctx.File.LocalNames = append(ctx.File.LocalNames, ctx.text(child))
		}
	}
	return true
}

func (e *GoExtractor) extractRange(ctx *walkContext, node *sitter.Node) bool {
	if left := node.ChildByFieldName("left"); left != nil {
		ctx.appendLocalNames(left)
	}
	return false
}

func (e *GoExtractor) extractReference(ctx *walkContext, node *sitter.Node) bool {
	nk := node.Kind()
	if nk != "selector_expression" && nk != "qualified_type" && nk != "identifier" && nk != "type_identifier" {
		return false
	}

	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case "import_spec", "package_clause", "index_expression":
			return true
		}
	}

	name := ctx.text(node)
	if name == "" || name == "_" || name == "." {
		return true
	}

	if nk == "identifier" || nk == "type_identifier" {
		if parent := node.Parent(); parent != nil {
			switch parent.Kind() {
			case "selector_expression", "qualified_type":
				return false
			}
		}
	}

	for _, sym := range ctx.File.LocalNames {
		if sym == name {
			return true
		}
	}

	isType := nk == "type_identifier" || nk == "qualified_type"
	if nk == "selector_expression" || nk == "qualified_type" {
		parts := strings.Split(name, ".")
		if len(parts) > 2 {
			name = parts[0] + "." + parts[1]
		}
		ctx.processedChildren = true
	}

	ctx.File.References = append(ctx.File.References, Reference{
		Name:     name,
		Location: ctx.location(node),
		IsType:   isType,
	})
	return true
}

// ModuleBase returns the last path segment of a Go import path, the
// heuristic package-name-from-import-path mapping the teacher's
// resolver uses to match a selector's left-hand identifier against an
// import spec.
func ModuleBase(module string) string {
	if module == "" {
		return ""
	}
	parts := strings.Split(module, "/")
	return parts[len(parts)-1]
}
