// Package facade implements ports.TypeChecker and ports.ManifestReader
// with a tree-sitter parse, never a real compiler front end. It is
// grounded on the teacher's own extraction pipeline
// (internal/engine/parser) and its heuristic, non-type-checked import
// resolver (internal/engine/resolver), reused here to walk a workspace
// and classify occurrences instead of scoring cycles.
package facade

import (
	"path/filepath"
	"strings"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/facade/lang"
)

// Checker is a tree-sitter backed ports.TypeChecker. Its symbol table is
// global across every project it has scanned, not scoped per project,
// so that a reference in a dependent project can resolve against a
// dependency project's declarations once the Pipeline Driver has walked
// that dependency first (spec §4.3's dependency-first ordering).
type Checker struct {
	cfg       *config.Config
	registry  *lang.Registry
	manifests *Manifests

	// projectDirs maps a project name to its root directory. Populated
	// from cfg.PublishedPackages, or a single entry for cfg.ProjectName
	// rooted at cfg.WorkspaceRoot when no packages are published.
	projectDirs map[string]string

	files     map[string][]string    // project -> file paths, memoized
	extracted map[string]*lang.File  // file path -> parsed extraction
	fileOwner map[string]string      // file path -> owning project

	// symbols is the global, cross-project canonical-identity -> origin
	// table. Definitions from every scanned project accumulate here so
	// Resolve can answer for a reference in one project against a
	// declaration in another.
	symbols map[ports.SymbolID]symbolEntry

	aliasesByProject map[string][]ports.Alias
	scanned          map[string]bool
}

type symbolEntry struct {
	origin ports.SymbolOrigin
}

// New builds a Checker over cfg's workspace. Language grammars and
// their parser pools are constructed eagerly; project files are
// discovered lazily on first use.
func New(cfg *config.Config) *Checker {
	c := &Checker{
		cfg:              cfg,
		registry:         lang.NewRegistry(),
		manifests:        NewManifests(cfg),
		projectDirs:      make(map[string]string),
		files:            make(map[string][]string),
		extracted:        make(map[string]*lang.File),
		fileOwner:        make(map[string]string),
		symbols:          make(map[ports.SymbolID]symbolEntry),
		aliasesByProject: make(map[string][]ports.Alias),
		scanned:          make(map[string]bool),
	}

	if len(cfg.PublishedPackages) == 0 {
		name := cfg.ProjectName
		if name == "" {
			name = filepath.Base(cfg.WorkspaceRoot)
		}
		c.projectDirs[name] = cfg.WorkspaceRoot
		return c
	}

	for _, pub := range cfg.PublishedPackages {
		dir := filepath.Dir(pub.Manifest)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.WorkspaceRoot, dir)
		}
		c.projectDirs[pub.Project] = filepath.Clean(dir)
	}
	return c
}

// canonicalName builds the dotted canonical identity a Definition and a
// qualified Reference to it must agree on: packageName.symbolName. It
// is the same scheme GoExtractor uses internally for FullName, exposed
// here so cross-file references in the same package, and cross-project
// references resolved via import aliasing, land on one key.
func canonicalName(packageName, symbolName string) string {
	if packageName == "" {
		return symbolName
	}
	return packageName + "." + symbolName
}

// resolveQualifiedName turns a reference name as extracted (either bare,
// or alias.Symbol / alias.Symbol.Member trimmed to alias.Symbol) into
// the canonical identity it should match, using the referencing file's
// own import list to map the alias back to a module path.
func resolveQualifiedName(file *lang.File, refName string) string {
	parts := strings.SplitN(refName, ".", 2)
	if len(parts) == 1 {
		return canonicalName(file.PackageName, refName)
	}
	alias, symbol := parts[0], parts[1]
	for _, imp := range file.Imports {
		importAlias := imp.Alias
		if importAlias == "" {
			importAlias = lang.ModuleBase(imp.Module)
		}
		if importAlias == alias {
			return canonicalName(lang.ModuleBase(imp.Module), symbol)
		}
	}
	// No import matched; the reference may still be to a local dotted
	// path (e.g. a Go selector on a local variable's field), which this
	// façade cannot resolve without real type information.
	return canonicalName(file.PackageName, refName)
}
