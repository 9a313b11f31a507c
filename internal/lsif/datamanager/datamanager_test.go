// # internal/lsif/datamanager/datamanager_test.go
package datamanager

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/ids"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
	"lsifgo/internal/lsif/moniker/pkgcache"
)

type captureEmitter struct {
	elements []model.Element
}

func (c *captureEmitter) Start() error { return nil }
func (c *captureEmitter) Emit(el model.Element) error {
	c.elements = append(c.elements, el)
	return nil
}
func (c *captureEmitter) End() error { return nil }

func (c *captureEmitter) labels() []model.Label {
	labels := make([]model.Label, len(c.elements))
	for i, el := range c.elements {
		labels[i] = el.ElementLabel()
	}
	return labels
}

func (c *captureEmitter) countLabel(label model.Label) int {
	n := 0
	for _, el := range c.elements {
		if el.ElementLabel() == label {
			n++
		}
	}
	return n
}

// countVertex counts only vertices with label. The moniker and
// packageInformation edges carry the same label as their vertices, so
// countLabel would count both.
func (c *captureEmitter) countVertex(label model.Label) int {
	n := 0
	for _, el := range c.elements {
		if el.ElementType() == model.TypeVertex && el.ElementLabel() == label {
			n++
		}
	}
	return n
}

type fakeReporter struct {
	diagnostics []ports.Diagnostic
}

func (f *fakeReporter) Begin(int)                           {}
func (f *fakeReporter) Progress(int)                        {}
func (f *fakeReporter) ProjectDone(ports.ProjectSummary)    {}
func (f *fakeReporter) ReportInternalSymbol(d ports.Diagnostic) {
	f.diagnostics = append(f.diagnostics, d)
}
func (f *fakeReporter) End() {}

func newTestManager(t *testing.T) (*Manager, *captureEmitter) {
	t.Helper()
	emitter := &captureEmitter{}
	builder := ids.NewBuilder(ids.NewGenerator(ids.PolicyNumber), false)
	mgr := New(builder, emitter, &fakeReporter{}, pkgcache.NewMemory())
	return mgr, emitter
}

func span(a, b int) ports.Span {
	return ports.Span{Start: ports.Position{Line: 0, Character: a}, End: ports.Position{Line: 0, Character: b}}
}

func TestDocumentLocalSymbolFinalizesAtDocumentClose(t *testing.T) {
	mgr, emitter := newTestManager(t)

	const project model.ID = "1"
	_, err := mgr.OpenDocument("file:///a.go", "go", "package a")
	require.NoError(t, err)

	origin := ports.SymbolOrigin{CanonicalIdentity: "localVar"}
	resolved := MonikerResult{result: moniker.Result{Kind: moniker.KindLocal, Identifier: "localVar"}}

	require.NoError(t, mgr.RecordOccurrence(project, "file:///a.go", "sym1", ports.OccurrenceDeclaration, span(0, 5), origin, resolved))
	require.NoError(t, mgr.RecordOccurrence(project, "file:///a.go", "sym1", ports.OccurrenceReference, span(10, 15), origin, resolved))

	require.Equal(t, 0, emitter.countLabel(model.LabelDefinitionResult))

	require.NoError(t, mgr.CloseDocument(project, "file:///a.go"))

	require.Equal(t, 1, emitter.countLabel(model.LabelDefinitionResult))
	require.Equal(t, 1, emitter.countLabel(model.LabelReferenceResult))
	require.Equal(t, 2, emitter.countLabel(model.LabelItem))
	require.Equal(t, 1, emitter.countLabel(model.LabelContains))
}

func TestGlobalSymbolDefersReferenceResultToPipelineClose(t *testing.T) {
	mgr, emitter := newTestManager(t)

	const project model.ID = "1"
	_, err := mgr.OpenDocument("file:///lib.go", "go", "package lib")
	require.NoError(t, err)

	origin := ports.SymbolOrigin{CanonicalIdentity: "Exported", CrossesDocument: true}
	resolved := MonikerResult{result: moniker.Result{
		Kind:       moniker.KindExport,
		Scheme:     "npm",
		Identifier: "widgets:lib.go:Exported",
		Package:    ports.PackageManifest{Name: "widgets", Version: "1.0.0"},
	}}

	require.NoError(t, mgr.RecordOccurrence(project, "file:///lib.go", "sym1", ports.OccurrenceDeclaration, span(0, 5), origin, resolved))
	require.NoError(t, mgr.RecordOccurrence(project, "file:///lib.go", "sym1", ports.OccurrenceReference, span(10, 15), origin, resolved))
	require.NoError(t, mgr.CloseDocument(project, "file:///lib.go"))

	// Declaration-bearing kinds have flushed by project close (at document close)...
	require.NoError(t, mgr.CloseProject(project))
	require.Equal(t, 1, emitter.countLabel(model.LabelDefinitionResult))
	// ...but the reference result stays open for importer contributions.
	require.Equal(t, 0, emitter.countLabel(model.LabelReferenceResult))

	require.NoError(t, mgr.ClosePipeline())
	require.Equal(t, 1, emitter.countLabel(model.LabelReferenceResult))

	require.Equal(t, 1, emitter.countVertex(model.LabelMoniker))
	require.Equal(t, 1, emitter.countVertex(model.LabelPackageInformation))
}

func TestPackageInformationDedupedAcrossSymbols(t *testing.T) {
	mgr, emitter := newTestManager(t)

	const project model.ID = "1"
	_, err := mgr.OpenDocument("file:///dep/a.go", "go", "")
	require.NoError(t, err)

	pkg := ports.PackageManifest{Name: "leftpad", Version: "1.0.0"}
	resolvedA := MonikerResult{result: moniker.Result{Kind: moniker.KindImport, Scheme: "npm", Identifier: "leftpad:a.go:A", Package: pkg}}
	resolvedB := MonikerResult{result: moniker.Result{Kind: moniker.KindImport, Scheme: "npm", Identifier: "leftpad:a.go:B", Package: pkg}}

	require.NoError(t, mgr.RecordOccurrence(project, "file:///dep/a.go", "symA", ports.OccurrenceDeclaration, span(0, 1), ports.SymbolOrigin{CanonicalIdentity: "A"}, resolvedA))
	require.NoError(t, mgr.RecordOccurrence(project, "file:///dep/a.go", "symB", ports.OccurrenceDeclaration, span(2, 3), ports.SymbolOrigin{CanonicalIdentity: "B"}, resolvedB))

	require.Equal(t, 2, emitter.countVertex(model.LabelMoniker))
	require.Equal(t, 1, emitter.countVertex(model.LabelPackageInformation))
}

func TestAliasAddsNextEdgeWithoutDuplicatingResults(t *testing.T) {
	mgr, emitter := newTestManager(t)

	const project model.ID = "1"
	_, err := mgr.OpenDocument("file:///a.go", "go", "")
	require.NoError(t, err)

	originalOrigin := ports.SymbolOrigin{CanonicalIdentity: "Original"}
	aliasOrigin := ports.SymbolOrigin{CanonicalIdentity: "Alias"}
	resolved := MonikerResult{result: moniker.Result{Kind: moniker.KindLocal, Identifier: "Original"}}

	require.NoError(t, mgr.RecordOccurrence(project, "file:///a.go", "original", ports.OccurrenceDeclaration, span(0, 3), originalOrigin, resolved))
	require.NoError(t, mgr.Alias("alias", "original", aliasOrigin, originalOrigin, project, resolved))
	require.NoError(t, mgr.RecordOccurrence(project, "file:///a.go", "alias", ports.OccurrenceReference, span(10, 13), aliasOrigin, resolved))

	require.NoError(t, mgr.CloseDocument(project, "file:///a.go"))

	// Only the original symbol's declaration contributes to a result
	// vertex; the alias's reference occurrence attaches a Range/next but
	// no separate referenceResult.
	require.Equal(t, 1, emitter.countLabel(model.LabelDefinitionResult))
	require.Equal(t, 0, emitter.countLabel(model.LabelReferenceResult))
	// original's declaration range, the alias forwarding edge, and the
	// alias occurrence's own range->resultSet edge.
	require.Equal(t, 3, emitter.countLabel(model.LabelNext))
}

func TestAliasRejectsCycle(t *testing.T) {
	mgr, _ := newTestManager(t)

	const project model.ID = "1"
	_, err := mgr.OpenDocument("file:///a.go", "go", "")
	require.NoError(t, err)

	a := ports.SymbolOrigin{CanonicalIdentity: "A"}
	b := ports.SymbolOrigin{CanonicalIdentity: "B"}
	resolved := MonikerResult{result: moniker.Result{Kind: moniker.KindLocal, Identifier: "x"}}

	require.NoError(t, mgr.Alias("a", "b", a, b, project, resolved))
	err = mgr.Alias("b", "a", b, a, project, resolved)
	require.Error(t, err)
}
