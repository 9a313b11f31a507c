// Package fake implements ports.TypeChecker and ports.ManifestReader
// entirely in memory, with no tree-sitter dependency, so the core
// indexing pipeline's behavior can be exercised end to end without the
// real façade — grounded on the fakeChecker/fakeManifestReader types
// already hand-written per test file in internal/lsif/pipeline and
// internal/lsif/indexer, generalized into one reusable builder so new
// integration tests don't each redeclare the same struct.
package fake

import (
	"context"
	"path/filepath"

	"lsifgo/internal/core/ports"
)

// Checker is a builder-style, in-memory ports.TypeChecker. Zero value is
// usable; chain the With* methods to describe a scenario.
type Checker struct {
	files       map[string][]string
	references  map[string][]string
	languages   map[string]string
	occurrences map[string][]ports.Occurrence
	origins     map[ports.SymbolID]ports.SymbolOrigin
	aliases     map[string][]ports.Alias
	contents    map[string]string
}

// New returns an empty Checker ready for WithFile/WithOccurrence calls.
func New() *Checker {
	return &Checker{
		files:       make(map[string][]string),
		references:  make(map[string][]string),
		languages:   make(map[string]string),
		occurrences: make(map[string][]ports.Occurrence),
		origins:     make(map[ports.SymbolID]ports.SymbolOrigin),
		aliases:     make(map[string][]ports.Alias),
		contents:    make(map[string]string),
	}
}

// WithFile registers file as belonging to project, written in language,
// with the given source text.
func (c *Checker) WithFile(project, file, language, content string) *Checker {
	c.files[project] = append(c.files[project], file)
	c.languages[file] = language
	c.contents[file] = content
	return c
}

// WithProjectReferences declares project's dependency edges for the
// Pipeline Driver's topological sort.
func (c *Checker) WithProjectReferences(project string, dependsOn ...string) *Checker {
	c.references[project] = append(c.references[project], dependsOn...)
	return c
}

// WithOccurrence appends one occurrence to file's reported set.
func (c *Checker) WithOccurrence(file string, occ ports.Occurrence) *Checker {
	c.occurrences[file] = append(c.occurrences[file], occ)
	return c
}

// WithOrigin registers symbol's declaration site(s), returned by
// Resolve. Omitting this for a symbol makes Resolve report it
// unresolved, matching an honest façade's behavior for an external
// symbol.
func (c *Checker) WithOrigin(symbol ports.SymbolID, origin ports.SymbolOrigin) *Checker {
	c.origins[symbol] = origin
	return c
}

// WithAlias records that project's façade detected From denotes the
// same declaration as To.
func (c *Checker) WithAlias(project string, alias ports.Alias) *Checker {
	c.aliases[project] = append(c.aliases[project], alias)
	return c
}

func (c *Checker) ProjectReferences(ctx context.Context, project string) ([]string, error) {
	return c.references[project], nil
}

func (c *Checker) Files(ctx context.Context, project string) ([]string, error) {
	return c.files[project], nil
}

func (c *Checker) Language(file string) string {
	return c.languages[file]
}

func (c *Checker) Occurrences(ctx context.Context, project, file string) ([]ports.Occurrence, error) {
	return c.occurrences[file], nil
}

func (c *Checker) Resolve(ctx context.Context, project string, symbol ports.SymbolID) (ports.SymbolOrigin, bool) {
	origin, ok := c.origins[symbol]
	return origin, ok
}

func (c *Checker) Aliases(ctx context.Context, project string) ([]ports.Alias, error) {
	return c.aliases[project], nil
}

func (c *Checker) Contents(ctx context.Context, file string) (string, error) {
	return c.contents[file], nil
}

// ManifestReader is an in-memory ports.ManifestReader. The zero value
// finds nothing, sufficient for scenarios that don't exercise
// import/export monikers.
type ManifestReader struct {
	Manifests map[string]ports.PackageManifest // project -> manifest, for WorkspaceManifest
	// ManifestDirs maps a directory to the manifest that owns it, for
	// FindManifest's upward walk.
	ManifestDirs map[string]ports.PackageManifest
}

// FindManifest walks file's directory upward looking for an entry in
// ManifestDirs, mirroring the real façade's upward go.mod/package.json
// search without touching a filesystem.
func (m ManifestReader) FindManifest(file string) (string, ports.PackageManifest, bool) {
	dir := filepath.Dir(file)
	for {
		if manifest, ok := m.ManifestDirs[dir]; ok {
			return dir, manifest, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ports.PackageManifest{}, false
		}
		dir = parent
	}
}

func (m ManifestReader) WorkspaceManifest(project string) (ports.PackageManifest, bool) {
	manifest, ok := m.Manifests[project]
	return manifest, ok
}
