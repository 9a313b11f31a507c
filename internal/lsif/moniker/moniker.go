// # internal/lsif/moniker/moniker.go
// Package moniker computes cross-project identity strings for symbols
// (spec §4.3): the Import sub-resolver matches a symbol to an external
// package dependency, the Export sub-resolver matches it to the current
// package's own manifest, and a deterministic local fallback covers
// everything neither resolver claims.
package moniker

import (
	"path/filepath"
	"strings"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
)

// Kind mirrors model.MonikerKind without importing the model package,
// keeping this resolver usable independent of the Builder.
type Kind string

const (
	KindImport Kind = "import"
	KindExport Kind = "export"
	KindLocal  Kind = "local"
)

// Result is what Resolve returns for one symbol.
type Result struct {
	Kind       Kind
	Scheme     string
	Identifier string
	// Package is populated for Import/Export results; the caller is
	// responsible for deduplicating PackageInformation vertices via
	// pkgcache.
	Package ports.PackageManifest
	// InternalButExternallyReferenced is set when the fallback local
	// moniker is emitted in strict mode for a symbol referenced outside
	// its declaring document (spec §4.3's diagnostic case).
	InternalButExternallyReferenced bool
}

// Resolver composes the Import and Export sub-resolvers plus the local
// fallback, per symbol.
type Resolver struct {
	scheme   string
	strict   bool
	manifest ports.ManifestReader
	imp      *importResolver
	exp      *exportResolver
}

// New constructs a Resolver. exportManifest is the manifest governing
// the current project and exportManifestDir its directory, if one was
// found (per-project, per spec §4.3 "constructed per-project only when
// a manifest is available").
func New(cfg *config.Config, manifestReader ports.ManifestReader, exportManifestDir string, exportManifest *ports.PackageManifest) *Resolver {
	scheme := cfg.MonikerScheme
	if scheme == "" {
		scheme = "npm"
	}
	imp := newImportResolver(manifestReader, scheme)
	imp.ownManifestDir = exportManifestDir
	r := &Resolver{
		scheme:   scheme,
		strict:   cfg.Moniker == config.ModeStrict,
		manifest: manifestReader,
		imp:      imp,
	}
	if exportManifest != nil {
		r.exp = newExportResolver(*exportManifest, exportManifestDir, scheme)
	}
	return r
}

// Resolve classifies one symbol's origin. A candidate import manifest
// found in the exportManifestDir given to New is the project's own, so
// it is not treated as an import (spec §4.3 step 3).
func (r *Resolver) Resolve(origin ports.SymbolOrigin, referencedOutsideDeclaringDocument bool) Result {
	// Open Question decision: export takes priority over import when
	// both match (see DESIGN.md) — a symbol the current project's own
	// manifest exposes is never "from a dependency."
	if r.exp != nil {
		if res, ok := r.exp.resolve(origin); ok {
			return res
		}
	}
	if r.imp != nil {
		if res, ok := r.imp.resolve(origin); ok {
			return res
		}
	}

	result := Result{
		Kind:       KindLocal,
		Scheme:     r.scheme,
		Identifier: localIdentifier(origin.CanonicalIdentity),
	}
	if r.strict && referencedOutsideDeclaringDocument {
		result.InternalButExternallyReferenced = true
	}
	return result
}

// localIdentifier derives a deterministic local moniker identifier from
// a symbol's canonical identity (spec §4.3 fallback).
func localIdentifier(canonicalIdentity string) string {
	return canonicalIdentity
}

// symbolPath returns the canonical identity unchanged as the
// symbol-path suffix used by every moniker kind. Segments keep whatever
// form the façade's canonical identity gives them; anonymous-scope
// segments are not rewritten into `[N]` indices.
func symbolPath(canonicalIdentity string) string {
	return canonicalIdentity
}

// relativeTo returns path relative to dir using forward slashes, for
// moniker identifiers (spec §6 requires forward slashes regardless of
// OS).
func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func identifier(pkgName, relPath, symPath string) string {
	var b strings.Builder
	b.WriteString(pkgName)
	b.WriteByte(':')
	b.WriteString(relPath)
	b.WriteByte(':')
	b.WriteString(symPath)
	return b.String()
}
