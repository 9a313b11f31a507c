// # internal/lsif/moniker/moniker_test.go
package moniker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
)

type fakeManifestReader struct {
	byDir map[string]ports.PackageManifest
}

func (f *fakeManifestReader) FindManifest(file string) (string, ports.PackageManifest, bool) {
	for dir, m := range f.byDir {
		if len(file) >= len(dir) && file[:len(dir)] == dir {
			return dir, m, true
		}
	}
	return "", ports.PackageManifest{}, false
}

func (f *fakeManifestReader) WorkspaceManifest(project string) (ports.PackageManifest, bool) {
	return ports.PackageManifest{}, false
}

func baseConfig(mode config.MonikerMode) *config.Config {
	return &config.Config{Moniker: mode, MonikerScheme: "npm"}
}

func TestResolveExportTakesPriorityOverImport(t *testing.T) {
	reader := &fakeManifestReader{byDir: map[string]ports.PackageManifest{
		"/repo/pkg": {Name: "widgets"},
	}}
	exportManifest := ports.PackageManifest{Name: "widgets"}
	r := New(baseConfig(config.ModeLenient), reader, "/repo/pkg", &exportManifest)

	origin := ports.SymbolOrigin{CanonicalIdentity: "Widget.Build", DeclarationFile: "/repo/pkg/widget.go"}
	result := r.Resolve(origin, false)

	require.Equal(t, KindExport, result.Kind)
	require.Equal(t, "widgets:widget.go:Widget.Build", result.Identifier)
}

func TestResolveImportForDependencyFile(t *testing.T) {
	reader := &fakeManifestReader{byDir: map[string]ports.PackageManifest{
		"/repo/vendor/leftpad": {Name: "leftpad", Version: "1.0.0"},
	}}
	r := New(baseConfig(config.ModeLenient), reader, "/repo/pkg", nil)

	origin := ports.SymbolOrigin{CanonicalIdentity: "Pad", DeclarationFile: "/repo/vendor/leftpad/pad.go"}
	result := r.Resolve(origin, false)

	require.Equal(t, KindImport, result.Kind)
	require.Equal(t, "leftpad:pad.go:Pad", result.Identifier)
	require.Equal(t, "1.0.0", result.Package.Version)
}

func TestResolveImportDeclinesOwnManifest(t *testing.T) {
	reader := &fakeManifestReader{byDir: map[string]ports.PackageManifest{
		"/repo/pkg": {Name: "widgets"},
	}}
	r := New(baseConfig(config.ModeLenient), reader, "/repo/pkg", nil)

	origin := ports.SymbolOrigin{CanonicalIdentity: "Widget", DeclarationFile: "/repo/pkg/widget.go"}
	result := r.Resolve(origin, false)

	require.Equal(t, KindLocal, result.Kind)
}

func TestResolveLocalFallbackStrictReportsExternalReference(t *testing.T) {
	r := New(baseConfig(config.ModeStrict), &fakeManifestReader{byDir: map[string]ports.PackageManifest{}}, "", nil)

	origin := ports.SymbolOrigin{CanonicalIdentity: "helper"}
	result := r.Resolve(origin, true)

	require.Equal(t, KindLocal, result.Kind)
	require.True(t, result.InternalButExternallyReferenced)
}

func TestResolveLocalFallbackLenientDoesNotReport(t *testing.T) {
	r := New(baseConfig(config.ModeLenient), &fakeManifestReader{byDir: map[string]ports.PackageManifest{}}, "", nil)

	origin := ports.SymbolOrigin{CanonicalIdentity: "helper"}
	result := r.Resolve(origin, true)

	require.Equal(t, KindLocal, result.Kind)
	require.False(t, result.InternalButExternallyReferenced)
}
