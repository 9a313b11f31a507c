package lang

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Registry binds one tree-sitter grammar and one Extractor per
// language ID, grounded on the teacher's GrammarLoader — minus the CSS
// and HTML bindings, which have no type system for a façade to report
// symbols against.
type Registry struct {
	languages  map[string]*sitter.Language
	extractors map[string]Extractor
	extensions map[string]string
	pools      map[string]*parserPool
}

// NewRegistry constructs the full language registry: Go and Python get
// hand-tuned extractors, the rest share the universal classifier.
func NewRegistry() *Registry {
	r := &Registry{
		languages:  make(map[string]*sitter.Language),
		extractors: make(map[string]Extractor),
		pools:      make(map[string]*parserPool),
		extensions: map[string]string{
			".go":   "go",
			".py":   "python",
			".ts":   "typescript",
			".tsx":  "tsx",
			".js":   "javascript",
			".jsx":  "javascript",
			".java": "java",
			".rs":   "rust",
		},
	}

	r.languages["go"] = sitter.NewLanguage(tree_sitter_go.Language())
	r.languages["python"] = sitter.NewLanguage(tree_sitter_python.Language())
	r.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
	r.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	r.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	r.languages["java"] = sitter.NewLanguage(tree_sitter_java.Language())
	r.languages["rust"] = sitter.NewLanguage(tree_sitter_rust.Language())

	r.extractors["go"] = &GoExtractor{}
	r.extractors["python"] = &PythonExtractor{}
	for _, id := range []string{"javascript", "typescript", "tsx", "java", "rust"} {
		r.extractors[id] = &UniversalExtractor{Language: id}
	}

	for id, l := range r.languages {
		r.pools[id] = newParserPool(l)
	}

	return r
}

// LanguageForPath returns the language ID lsifgo uses for the file
// extension ext (e.g. ".go"), or "" if the extension isn't registered.
func (r *Registry) LanguageForPath(ext string) string {
	return r.extensions[ext]
}

// Language returns the tree-sitter grammar for languageID.
func (r *Registry) Language(languageID string) (*sitter.Language, error) {
	lang, ok := r.languages[languageID]
	if !ok {
		return nil, fmt.Errorf("lang: no grammar registered for %q", languageID)
	}
	return lang, nil
}

// Extractor returns the Extractor for languageID.
func (r *Registry) Extractor(languageID string) (Extractor, error) {
	ext, ok := r.extractors[languageID]
	if !ok {
		return nil, fmt.Errorf("lang: no extractor registered for %q", languageID)
	}
	return ext, nil
}

// Extensions returns every registered file extension.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		exts = append(exts, ext)
	}
	return exts
}
