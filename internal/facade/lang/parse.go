package lang

import "fmt"

// ExtractFile parses source as languageID and runs its registered
// Extractor, returning a File. The parse tree is released before
// returning; callers never see a *sitter.Node.
func (r *Registry) ExtractFile(languageID string, source []byte, path string) (*File, error) {
	pool, ok := r.pools[languageID]
	if !ok {
		return nil, fmt.Errorf("lang: no grammar registered for %q", languageID)
	}
	extractor, err := r.Extractor(languageID)
	if err != nil {
		return nil, err
	}

	parser := pool.get()
	defer pool.put(parser)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("lang: parse failed for %s", path)
	}
	defer tree.Close()

	return extractor.Extract(tree.RootNode(), source, path)
}
