// # internal/core/ports/ports.go
// Package ports declares the interfaces the core indexing pipeline
// consumes but never implements: source parsing / type resolution,
// package-manifest reading, source-control probing, and reporting.
// The core (internal/lsif/...) imports only this package, never a
// concrete adapter, so swapping the façade or the VCS prober never
// touches indexing logic.
package ports

import "context"

// OccurrenceKind classifies how a symbol is used at one source location.
type OccurrenceKind string

const (
	OccurrenceDeclaration   OccurrenceKind = "declaration"
	OccurrenceDefinition    OccurrenceKind = "definition"
	OccurrenceReference     OccurrenceKind = "reference"
	OccurrenceTypeReference OccurrenceKind = "typeReference"
)

// Position is a zero-based line/character location.
type Position struct {
	Line      int
	Character int
}

// Span is a half-open source range inside one file.
type Span struct {
	Start Position
	End   Position
}

// SymbolID is the façade's opaque handle for a resolved symbol. The core
// never interprets it — it only uses it as a map key to find-or-create
// the symbol's Data Manager record.
type SymbolID string

// Occurrence is one syntactic entity the façade reports while a document
// is walked.
type Occurrence struct {
	Symbol SymbolID
	Kind   OccurrenceKind
	Span   Span
}

// DeclarationSite names the file and span of a symbol's canonical
// declaration, used for hover text and unresolved-reference diagnostics.
type DeclarationSite struct {
	File string
	Span Span
}

// SymbolOrigin describes where a symbol's declaration lives — the input
// the Moniker Resolver needs to classify it as import/export/local.
type SymbolOrigin struct {
	// CanonicalIdentity is the dotted symbol path used as the in-memory
	// key for the symbol across all its references.
	CanonicalIdentity string
	DeclarationFile   string
	// CrossesDocument is true when the symbol's declaring scope
	// transcends a single document (e.g. a package-level declaration).
	CrossesDocument bool
	HoverText       string
	Declarations    []DeclarationSite
}

// Alias reports that symbol From denotes the same declaration as symbol
// To (a re-export, an `export =`, a reassignment).
type Alias struct {
	From SymbolID
	To   SymbolID
}

// TypeChecker is the façade the Project Indexer walks a compilation unit
// through. It is assumed not to be re-entrant: the core never calls it
// from more than one goroutine at a time.
type TypeChecker interface {
	// ProjectReferences returns the "declared references" relation the
	// Pipeline Driver topologically sorts projects by.
	ProjectReferences(ctx context.Context, project string) ([]string, error)

	// Files returns the source files belonging to project, excluding
	// files already owned by a dependent project indexed earlier.
	Files(ctx context.Context, project string) ([]string, error)

	// Language reports the document language ID for a file (e.g. "go").
	Language(file string) string

	// Occurrences returns every syntactic entity the façade finds in
	// file, in any order; the Project Indexer resolves each to a symbol.
	Occurrences(ctx context.Context, project, file string) ([]Occurrence, error)

	// Resolve returns the origin of a symbol reported by Occurrences. ok
	// is false when the façade could not find any declaration for the
	// symbol.
	Resolve(ctx context.Context, project string, symbol SymbolID) (SymbolOrigin, bool)

	// Aliases returns the aliasing relationships the façade detected for
	// project, reported once per project walk.
	Aliases(ctx context.Context, project string) ([]Alias, error)

	// Contents returns a file's source text, used for Document vertices
	// unless content embedding is disabled.
	Contents(ctx context.Context, file string) (string, error)
}

// PackageManifest is the subset of manifest fields the Export/Import
// Moniker resolvers need.
type PackageManifest struct {
	Name       string
	Version    string
	Manager    string
	Repository string
	// MainEntries are the manifest's entry-point files; a symbol is
	// export-reachable only if it is reachable from one of these.
	MainEntries []string
	// Dependencies maps an imported package name to its declared
	// version, used by the Import Moniker resolver.
	Dependencies map[string]string
}

// ManifestReader locates and parses package manifests by walking upward
// from a source file.
type ManifestReader interface {
	// FindManifest walks upward from file until it locates an owning
	// package manifest, returning its directory and parsed contents. ok
	// is false when no manifest is found before the workspace root.
	FindManifest(file string) (dir string, manifest PackageManifest, ok bool)

	// WorkspaceManifest returns the manifest bound to a project by
	// configuration, if any.
	WorkspaceManifest(project string) (PackageManifest, bool)
}

// SourceControlProber fills the Source vertex's commit/branch fields
// when repository probing is enabled.
type SourceControlProber interface {
	Probe(ctx context.Context, workspaceRoot string) (repoURL, kind, commit, branch string, err error)
}

// Diagnostic is the payload of a per-symbol reporter event — an internal
// symbol that turned out to be referenced from outside its declaring
// document.
type Diagnostic struct {
	Symbol          SymbolID
	DisplayName     string
	DeclarationSite DeclarationSite
	ProblemFile     string
	ProblemSpan     Span
}

// ProjectSummary is the payload of a per-project reporter event.
type ProjectSummary struct {
	Project       string
	SymbolCount   int
	DocumentCount int
	ElapsedMS     int64
}

// Reporter is the pluggable sink for the events the indexer emits:
// progress ticks, per-project summaries, and per-symbol diagnostics.
// Concrete implementations live in internal/lsif/reporter, kept out of
// this package so the core stays decoupled from their construction.
type Reporter interface {
	Begin(totalProjects int)
	Progress(documentsIndexed int)
	ProjectDone(summary ProjectSummary)
	ReportInternalSymbol(d Diagnostic)
	End()
}
