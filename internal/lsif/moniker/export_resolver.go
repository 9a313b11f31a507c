// # internal/lsif/moniker/export_resolver.go
package moniker

import (
	"path/filepath"
	"strings"

	"lsifgo/internal/core/ports"
)

// exportResolver emits `export` monikers for symbols whose canonical
// identity is reachable from the manifest's entry points (spec §4.3).
// Reachability is approximated the way most indexers approximate it
// without a full module graph: a symbol is export-reachable if its
// declaration file is one of the manifest's declared entry points, or
// if no entry points are declared at all (a manifest with no explicit
// `main` exports everything it declares, the common case for a
// same-language monorepo package).
type exportResolver struct {
	manifest ports.PackageManifest
	dir      string
	scheme   string
	entries  map[string]bool
}

func newExportResolver(manifest ports.PackageManifest, dir, scheme string) *exportResolver {
	entries := make(map[string]bool, len(manifest.MainEntries))
	for _, e := range manifest.MainEntries {
		entries[filepath.Clean(filepath.Join(dir, e))] = true
	}
	return &exportResolver{manifest: manifest, dir: dir, scheme: scheme, entries: entries}
}

func (r *exportResolver) resolve(origin ports.SymbolOrigin) (Result, bool) {
	if origin.DeclarationFile == "" {
		return Result{}, false
	}
	if !strings.HasPrefix(filepath.Clean(origin.DeclarationFile), filepath.Clean(r.dir)) {
		return Result{}, false
	}
	if len(r.entries) > 0 && !r.entries[filepath.Clean(origin.DeclarationFile)] {
		return Result{}, false
	}

	relPath := relativeTo(r.dir, origin.DeclarationFile)
	symPath := symbolPath(origin.CanonicalIdentity)
	return Result{
		Kind:       KindExport,
		Scheme:     r.scheme,
		Identifier: identifier(r.manifest.Name, relPath, symPath),
		Package:    r.manifest,
	}, true
}
