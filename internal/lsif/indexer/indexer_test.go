// # internal/lsif/indexer/indexer_test.go
package indexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/datamanager"
	"lsifgo/internal/lsif/ids"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
	"lsifgo/internal/lsif/moniker/pkgcache"
)

type fakeChecker struct {
	files       map[string][]string
	occurrences map[string][]ports.Occurrence
	origins     map[ports.SymbolID]ports.SymbolOrigin
	aliases     map[string][]ports.Alias
	contents    map[string]string
}

func (f *fakeChecker) ProjectReferences(ctx context.Context, project string) ([]string, error) {
	return nil, nil
}
func (f *fakeChecker) Files(ctx context.Context, project string) ([]string, error) {
	return f.files[project], nil
}
func (f *fakeChecker) Language(file string) string { return "go" }
func (f *fakeChecker) Occurrences(ctx context.Context, project, file string) ([]ports.Occurrence, error) {
	return f.occurrences[file], nil
}
func (f *fakeChecker) Resolve(ctx context.Context, project string, symbol ports.SymbolID) (ports.SymbolOrigin, bool) {
	origin, ok := f.origins[symbol]
	return origin, ok
}
func (f *fakeChecker) Aliases(ctx context.Context, project string) ([]ports.Alias, error) {
	return f.aliases[project], nil
}
func (f *fakeChecker) Contents(ctx context.Context, file string) (string, error) {
	return f.contents[file], nil
}

type captureEmitter struct{ elements []model.Element }

func (c *captureEmitter) Start() error { return nil }
func (c *captureEmitter) Emit(el model.Element) error {
	c.elements = append(c.elements, el)
	return nil
}
func (c *captureEmitter) End() error { return nil }
func (c *captureEmitter) countLabel(label model.Label) int {
	n := 0
	for _, el := range c.elements {
		if el.ElementLabel() == label {
			n++
		}
	}
	return n
}

type fakeReporter struct {
	diagnostics []ports.Diagnostic
}

func (f *fakeReporter) Begin(int)                        {}
func (f *fakeReporter) Progress(int)                     {}
func (f *fakeReporter) ProjectDone(ports.ProjectSummary) {}
func (f *fakeReporter) ReportInternalSymbol(d ports.Diagnostic) {
	f.diagnostics = append(f.diagnostics, d)
}
func (f *fakeReporter) End() {}

type fakeManifestReader struct{}

func (fakeManifestReader) FindManifest(file string) (string, ports.PackageManifest, bool) {
	return "", ports.PackageManifest{}, false
}
func (fakeManifestReader) WorkspaceManifest(project string) (ports.PackageManifest, bool) {
	return ports.PackageManifest{}, false
}

func TestIndexProjectRecordsOccurrencesAndClosesDocuments(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{"proj": {"file:///a.go"}},
		occurrences: map[string][]ports.Occurrence{
			"file:///a.go": {
				{Symbol: "sym1", Kind: ports.OccurrenceDeclaration, Span: ports.Span{}},
				{Symbol: "sym1", Kind: ports.OccurrenceReference, Span: ports.Span{Start: ports.Position{Character: 5}, End: ports.Position{Character: 9}}},
			},
		},
		origins: map[ports.SymbolID]ports.SymbolOrigin{
			"sym1": {CanonicalIdentity: "Widget", DeclarationFile: "file:///a.go"},
		},
	}

	emitter := &captureEmitter{}
	builder := ids.NewBuilder(ids.NewGenerator(ids.PolicyNumber), false)
	reporter := &fakeReporter{}
	data := datamanager.New(builder, emitter, reporter, pkgcache.NewMemory())
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true}
	resolver := moniker.New(cfg, fakeManifestReader{}, "", nil)

	ix := New(checker, data, reporter, cfg)

	summary, err := ix.IndexProject(context.Background(), model.ID("p1"), "proj", nil, resolver)
	require.NoError(t, err)
	require.Equal(t, 1, summary.DocumentCount)
	require.Equal(t, 1, summary.SymbolCount)
	require.GreaterOrEqual(t, summary.ElapsedMS, int64(0))

	require.NoError(t, data.ClosePipeline())

	require.Equal(t, 1, emitter.countLabel(model.LabelDefinitionResult))
	require.Equal(t, 1, emitter.countLabel(model.LabelReferenceResult))
	require.Equal(t, 1, emitter.countLabel(model.LabelDocument))
	require.Equal(t, 1, emitter.countLabel(model.LabelContains))
}

func TestIndexProjectSkipsExcludedFiles(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{"proj": {"file:///a.go", "file:///b.go"}},
		occurrences: map[string][]ports.Occurrence{
			"file:///b.go": {{Symbol: "sym2", Kind: ports.OccurrenceDeclaration}},
		},
		origins: map[ports.SymbolID]ports.SymbolOrigin{
			"sym2": {CanonicalIdentity: "Other", DeclarationFile: "file:///b.go"},
		},
	}

	emitter := &captureEmitter{}
	builder := ids.NewBuilder(ids.NewGenerator(ids.PolicyNumber), false)
	reporter := &fakeReporter{}
	data := datamanager.New(builder, emitter, reporter, pkgcache.NewMemory())
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true}
	resolver := moniker.New(cfg, fakeManifestReader{}, "", nil)

	ix := New(checker, data, reporter, cfg)

	summary, err := ix.IndexProject(context.Background(), model.ID("p1"), "proj", map[string]bool{"file:///a.go": true}, resolver)
	require.NoError(t, err)
	require.Equal(t, 1, summary.DocumentCount)
	require.Equal(t, 1, emitter.countLabel(model.LabelDocument))
}

func TestIndexProjectReportsUnresolvedSymbol(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{"proj": {"file:///a.go"}},
		occurrences: map[string][]ports.Occurrence{
			"file:///a.go": {{Symbol: "missing", Kind: ports.OccurrenceReference}},
		},
		origins: map[ports.SymbolID]ports.SymbolOrigin{},
	}

	emitter := &captureEmitter{}
	builder := ids.NewBuilder(ids.NewGenerator(ids.PolicyNumber), false)
	reporter := &fakeReporter{}
	data := datamanager.New(builder, emitter, reporter, pkgcache.NewMemory())
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true}
	resolver := moniker.New(cfg, fakeManifestReader{}, "", nil)

	ix := New(checker, data, reporter, cfg)

	_, err := ix.IndexProject(context.Background(), model.ID("p1"), "proj", nil, resolver)
	require.NoError(t, err)
	require.Len(t, reporter.diagnostics, 1)
	require.Equal(t, ports.SymbolID("missing"), reporter.diagnostics[0].Symbol)
}

func TestIndexProjectReducesAliasCycleToDiagnostic(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{"proj": {"file:///a.go"}},
		aliases: map[string][]ports.Alias{
			"proj": {{From: "a", To: "b"}, {From: "b", To: "a"}},
		},
		origins: map[ports.SymbolID]ports.SymbolOrigin{
			"a": {CanonicalIdentity: "A", DeclarationFile: "file:///a.go"},
			"b": {CanonicalIdentity: "B", DeclarationFile: "file:///a.go"},
		},
	}

	emitter := &captureEmitter{}
	builder := ids.NewBuilder(ids.NewGenerator(ids.PolicyNumber), false)
	reporter := &fakeReporter{}
	data := datamanager.New(builder, emitter, reporter, pkgcache.NewMemory())
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true}
	resolver := moniker.New(cfg, fakeManifestReader{}, "", nil)

	ix := New(checker, data, reporter, cfg)

	_, err := ix.IndexProject(context.Background(), model.ID("p1"), "proj", nil, resolver)
	require.NoError(t, err)
	require.Len(t, reporter.diagnostics, 1)
}
