// # internal/lsif/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/errors"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/datamanager"
	"lsifgo/internal/lsif/ids"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker/pkgcache"
)

type fakeChecker struct {
	files      map[string][]string
	references map[string][]string
}

func (f *fakeChecker) ProjectReferences(ctx context.Context, project string) ([]string, error) {
	return f.references[project], nil
}
func (f *fakeChecker) Files(ctx context.Context, project string) ([]string, error) {
	return f.files[project], nil
}
func (f *fakeChecker) Language(file string) string { return "go" }
func (f *fakeChecker) Occurrences(ctx context.Context, project, file string) ([]ports.Occurrence, error) {
	return nil, nil
}
func (f *fakeChecker) Resolve(ctx context.Context, project string, symbol ports.SymbolID) (ports.SymbolOrigin, bool) {
	return ports.SymbolOrigin{}, false
}
func (f *fakeChecker) Aliases(ctx context.Context, project string) ([]ports.Alias, error) {
	return nil, nil
}
func (f *fakeChecker) Contents(ctx context.Context, file string) (string, error) { return "", nil }

type fakeManifestReader struct{}

func (fakeManifestReader) FindManifest(file string) (string, ports.PackageManifest, bool) {
	return "", ports.PackageManifest{}, false
}
func (fakeManifestReader) WorkspaceManifest(project string) (ports.PackageManifest, bool) {
	return ports.PackageManifest{}, false
}

type captureEmitter struct {
	started, ended bool
	elements       []model.Element
}

func (c *captureEmitter) Start() error { c.started = true; return nil }
func (c *captureEmitter) Emit(el model.Element) error {
	c.elements = append(c.elements, el)
	return nil
}
func (c *captureEmitter) End() error { c.ended = true; return nil }
func (c *captureEmitter) countLabel(label model.Label) int {
	n := 0
	for _, el := range c.elements {
		if el.ElementLabel() == label {
			n++
		}
	}
	return n
}

type recordingReporter struct {
	order []string
}

func (r *recordingReporter) Begin(int)    {}
func (r *recordingReporter) Progress(int) {}
func (r *recordingReporter) ProjectDone(s ports.ProjectSummary) {
	r.order = append(r.order, s.Project)
}
func (r *recordingReporter) ReportInternalSymbol(ports.Diagnostic) {}
func (r *recordingReporter) End()                                  {}

func newDriver(checker ports.TypeChecker, reporter ports.Reporter, cfg *config.Config) (*Driver, *captureEmitter) {
	emitter := &captureEmitter{}
	builder := ids.NewBuilder(ids.NewGenerator(ids.PolicyNumber), false)
	data := datamanager.New(builder, emitter, reporter, pkgcache.NewMemory())
	return New(checker, fakeManifestReader{}, nil, reporter, cfg, builder, emitter, data), emitter
}

func TestRunOrdersDependenciesBeforeDependents(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{
			"app": {"file:///app/main.go"},
			"lib": {"file:///lib/lib.go"},
		},
		references: map[string][]string{
			"app": {"lib"},
		},
	}
	reporter := &recordingReporter{}
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true}
	driver, emitter := newDriver(checker, reporter, cfg)

	require.NoError(t, driver.Run(context.Background(), "app"))

	require.Equal(t, []string{"lib", "app"}, reporter.order)
	require.True(t, emitter.started)
	require.True(t, emitter.ended)
	require.Equal(t, 1, emitter.countLabel(model.LabelMetaData))
	require.Equal(t, 1, emitter.countLabel(model.LabelSource))
	require.Equal(t, 1, emitter.countLabel(model.LabelCapabilities))
	require.Equal(t, 2, emitter.countLabel(model.LabelProject))
	require.Equal(t, 2, emitter.countLabel(model.LabelDocument))
}

func TestRunDetectsProjectCycle(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{
			"a": {"file:///a.go"},
			"b": {"file:///b.go"},
		},
		references: map[string][]string{
			"a": {"b"},
			"b": {"a"},
		},
	}
	reporter := &recordingReporter{}
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true}
	driver, _ := newDriver(checker, reporter, cfg)

	err := driver.Run(context.Background(), "a")
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeCycle))
}

func TestRunStandaloneWhenProjectReferencesDisabled(t *testing.T) {
	checker := &fakeChecker{
		files: map[string][]string{
			"app": {"file:///app/main.go"},
		},
		references: map[string][]string{
			"app": {"lib"}, // would be a dependency, but ignored below
		},
	}
	reporter := &recordingReporter{}
	cfg := &config.Config{Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true, NoProjectReferences: true}
	driver, _ := newDriver(checker, reporter, cfg)

	require.NoError(t, driver.Run(context.Background(), "app"))
	require.Equal(t, []string{"app"}, reporter.order)
}

func TestRunUsesSourceOverrideInsteadOfProbing(t *testing.T) {
	checker := &fakeChecker{files: map[string][]string{"app": {"file:///app/main.go"}}}
	reporter := &recordingReporter{}
	cfg := &config.Config{
		Moniker: config.ModeLenient, MonikerScheme: "npm", NoContents: true,
		SourceRepository: &config.SourceOverride{Repository: "https://example.test/app", Type: "git", Commit: "abc123", Branch: "main"},
	}
	driver, emitter := newDriver(checker, reporter, cfg)

	require.NoError(t, driver.Run(context.Background(), "app"))

	var source model.Source
	for _, el := range emitter.elements {
		if s, ok := el.(model.Source); ok {
			source = s
		}
	}
	require.Equal(t, "https://example.test/app", source.URL)
	require.Equal(t, "abc123", source.Commit)
}
