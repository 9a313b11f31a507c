// # internal/lsif/moniker/import_resolver.go
package moniker

import (
	"path/filepath"
	"strings"

	"lsifgo/internal/core/ports"
)

// importResolver is seeded lazily via the ManifestReader: for a given
// symbol it walks the symbol's declaration file upward to find the
// owning manifest, and declines when that manifest turns out to be the
// workspace's own (spec §4.3 steps 1-4).
type importResolver struct {
	reader ports.ManifestReader
	scheme string
	// ownManifestDir is the current project's own manifest directory
	// (when known): a candidate manifest matching it is the workspace's
	// own, not a dependency (spec §4.3 step 3).
	ownManifestDir string
	// cache memoizes FindManifest by directory, since sibling symbols in
	// the same dependency package repeat the walk.
	cache map[string]manifestLookup
}

type manifestLookup struct {
	dir      string
	manifest ports.PackageManifest
	ok       bool
}

func newImportResolver(reader ports.ManifestReader, scheme string) *importResolver {
	return &importResolver{reader: reader, scheme: scheme, cache: make(map[string]manifestLookup)}
}

func (r *importResolver) resolve(origin ports.SymbolOrigin) (Result, bool) {
	if r.reader == nil || origin.DeclarationFile == "" {
		return Result{}, false
	}

	lookup := r.lookup(origin.DeclarationFile)
	if !lookup.ok {
		return Result{}, false
	}
	if r.ownManifestDir != "" && lookup.dir == r.ownManifestDir {
		return Result{}, false
	}

	relPath := relativeTo(lookup.dir, origin.DeclarationFile)
	symPath := symbolPath(origin.CanonicalIdentity)
	return Result{
		Kind:       KindImport,
		Scheme:     r.scheme,
		Identifier: identifier(lookup.manifest.Name, relPath, symPath),
		Package:    lookup.manifest,
	}, true
}

func (r *importResolver) lookup(file string) manifestLookup {
	dir := filepath.Dir(file)
	if cached, ok := r.cache[dir]; ok {
		return cached
	}
	manifestDir, manifest, ok := r.reader.FindManifest(file)
	lookup := manifestLookup{dir: manifestDir, manifest: manifest, ok: ok}
	r.cache[dir] = lookup
	return lookup
}

// strippedPackagePrefix trims a leading package-manager scope prefix
// (e.g. "@scope/") from a dependency name for display purposes. Unused
// by the default npm-equivalent scheme but kept available for schemes
// that want bare names.
func strippedPackagePrefix(name string) string {
	if idx := strings.Index(name, "/"); idx >= 0 && strings.HasPrefix(name, "@") {
		return name[idx+1:]
	}
	return name
}
