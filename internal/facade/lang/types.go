// Package lang implements per-language symbol extraction over
// tree-sitter syntax trees: a hand-tuned extractor per language where
// one exists, and a generic node-kind classifier for everything else.
package lang

// DefinitionKind classifies a declaration site.
type DefinitionKind int

const (
	KindFunction DefinitionKind = iota
	KindMethod
	KindClass
	KindType
	KindInterface
	KindVariable
	KindConstant
)

// Location is a 1-based start/end line/column range inside one file.
// EndLine/EndColumn default to the start position when an extractor
// only captured a point location.
type Location struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Import is one import/require/use declaration found in a file.
type Import struct {
	Module string
	Alias  string
}

// Definition is one declaration site a language extractor found.
type Definition struct {
	Name     string
	FullName string
	Kind     DefinitionKind
	Location Location
	// IsTypeDeclaration marks a type/interface/class whose references
	// should classify as typeReference rather than reference.
	IsTypeDeclaration bool
}

// Reference is one use of a name a language extractor found; Name may
// be qualified ("pkg.Symbol") for selector/attribute expressions.
type Reference struct {
	Name      string
	Location  Location
	IsType    bool
	IsAliased bool // re-export / type-alias site, reported via Aliases
	AliasOf   string
}

// File is the result of extracting one source file.
type File struct {
	Path        string
	Language    string
	PackageName string
	Imports     []Import
	Definitions []Definition
	References  []Reference
	LocalNames  []string
}
