package lang

import (
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// UsageTag classifies the semantic role of a symbol occurrence in the
// AST, for languages without a hand-tuned extractor.
type UsageTag string

const (
	TagSymDef  UsageTag = "SYM_DEF"
	TagRefType UsageTag = "REF_TYPE"
	TagRefCall UsageTag = "REF_CALL"
)

type patternTier struct {
	re  *regexp.Regexp
	tag UsageTag
}

// universalPatternTiers classifies a tree-sitter node kind by regex,
// evaluated top-to-bottom; first match wins. Grounded on the teacher's
// node-kind classifier used as the last-resort extractor for any
// grammar that doesn't have a dedicated one.
var universalPatternTiers = []patternTier{
	{regexp.MustCompile(`(?i)(^|_)(declaration|definition)$`), TagSymDef},
	{regexp.MustCompile(`(?i)^(function_item|method_declaration|class_declaration|struct_item|enum_item|interface_declaration|trait_item|impl_item|record_declaration)$`), TagSymDef},
	{regexp.MustCompile(`(?i)^(type_identifier|qualified_type|generic_type|scoped_type_identifier|type_annotation)$`), TagRefType},
	{regexp.MustCompile(`(?i)^(call_expression|method_invocation|invocation_expression)$`), TagRefCall},
}

func classifyNodeKind(kind string) (UsageTag, bool) {
	for _, tier := range universalPatternTiers {
		if tier.re.MatchString(kind) {
			return tier.tag, true
		}
	}
	return "", false
}

// UniversalExtractor implements Extractor for any grammar by classifying
// node kinds against universalPatternTiers rather than dispatching on a
// per-language handler table.
type UniversalExtractor struct{ Language string }

func (e *UniversalExtractor) Extract(root *sitter.Node, source []byte, path string) (*File, error) {
	file := &File{Path: path, Language: e.Language}
	if root == nil {
		return file, nil
	}
	e.walk(root, source, file)
	return file, nil
}

func (e *UniversalExtractor) walk(node *sitter.Node, source []byte, file *File) {
	if node == nil {
		return
	}

	kind := node.Kind()
	if tag, ok := classifyNodeKind(kind); ok {
		if name := e.extractName(node, source); name != "" {
			switch tag {
			case TagSymDef:
				file.Definitions = append(file.Definitions, Definition{
					Name:     name,
					FullName: name,
					Kind:     KindFunction,
					Location: nodeLocation(node),
				})
			default:
				file.References = append(file.References, Reference{
					Name:     name,
					IsType:   tag == TagRefType,
					Location: nodeLocation(node),
				})
			}
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

func (e *UniversalExtractor) extractName(node *sitter.Node, source []byte) string {
	if fn := node.ChildByFieldName("function"); fn != nil {
		if text := nodeText(fn, source); text != "" && len(text) <= 128 {
			return text
		}
	}
	if name := node.ChildByFieldName("name"); name != nil {
		if text := nodeText(name, source); text != "" && len(text) <= 128 {
			return text
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "property_identifier", "field_identifier", "type_identifier":
			if text := nodeText(child, source); text != "" && len(text) <= 128 {
				return text
			}
		}
	}
	if node.ChildCount() == 0 {
		if text := nodeText(node, source); len(text) <= 128 {
			return text
		}
	}
	return ""
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= end || end > uint(len(source)) {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}
