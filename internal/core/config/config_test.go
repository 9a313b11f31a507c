// # internal/core/config/config_test.go
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ModeLenient, cfg.Moniker)
	require.Equal(t, IDNumber, cfg.ID)
	require.Equal(t, FormatLine, cfg.Format)
	require.Equal(t, "-", cfg.Out)
	require.Equal(t, "npm", cfg.MonikerScheme)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/lsifgo.toml")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	content := `
workspace_root = "/repo"
project_name = "widgets"
moniker = "strict"
id = "uuid"
output_format = "vis"
package = "package.json"

[watch]
enabled = true
debounce = "2s"

[exclude]
dirs = ["vendor", "node_modules"]
files = ["*_test.go"]
`
	tmp, err := os.CreateTemp(t.TempDir(), "lsifgo-*.toml")
	require.NoError(t, err)
	_, err = tmp.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	cfg, err := Load(tmp.Name())
	require.NoError(t, err)
	require.Equal(t, "/repo", cfg.WorkspaceRoot)
	require.Equal(t, "widgets", cfg.ProjectName)
	require.Equal(t, ModeStrict, cfg.Moniker)
	require.Equal(t, IDUUID, cfg.ID)
	require.Equal(t, FormatVis, cfg.Format)
	require.True(t, cfg.Watch.Enabled)
	require.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	require.ElementsMatch(t, []string{"vendor", "node_modules"}, cfg.Exclude.Dirs)
}

func TestLoadRejectsInvalidMoniker(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "lsifgo-*.toml")
	require.NoError(t, err)
	_, err = tmp.WriteString(`moniker = "bogus"`)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	_, err = Load(tmp.Name())
	require.Error(t, err)
}

func TestLoadRejectsMutuallyExclusivePackageFields(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "lsifgo-*.toml")
	require.NoError(t, err)
	_, err = tmp.WriteString(`
package = "package.json"
[[published_packages]]
manifest = "a/package.json"
project = "a"
`)
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	_, err = Load(tmp.Name())
	require.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("LSIFGO_WORKSPACE_ROOT", "/env/root")
	t.Setenv("LSIFGO_OUTPUT_FORMAT", "json")
	t.Setenv("LSIFGO_PROBE_REPOSITORY", "true")

	cfg := DefaultConfig()
	ApplyEnvOverrides(cfg)

	require.Equal(t, "/env/root", cfg.WorkspaceRoot)
	require.Equal(t, FormatJSON, cfg.Format)
	require.True(t, cfg.ProbeRepository)
}
