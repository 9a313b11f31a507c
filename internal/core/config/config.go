// # internal/core/config/config.go
package config

import "time"

// MonikerMode selects whether the Moniker Resolver flags a local symbol
// referenced outside its declaring document for a diagnostic (strict)
// or not (lenient). The Data Manager does not read it: its release of
// symbol state is the same in both modes.
type MonikerMode string

const (
	ModeStrict  MonikerMode = "strict"
	ModeLenient MonikerMode = "lenient"
)

// IDPolicy selects the ID/Vertex Builder's generation strategy (spec
// §4.1).
type IDPolicy string

const (
	IDNumber IDPolicy = "number"
	IDUUID   IDPolicy = "uuid"
)

// OutputFormat selects the Emitter implementation (spec §4.2).
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatLine     OutputFormat = "line"
	FormatVis      OutputFormat = "vis"
	FormatGraphSON OutputFormat = "graphson"
)

// PublishedPackage pairs a manifest with the project it governs, for
// multi-package workspaces (spec §6 "publishedPackages").
type PublishedPackage struct {
	Manifest string `toml:"manifest"`
	Project  string `toml:"project"`
}

// SourceOverride lets configuration substitute auto-detected
// source-control metadata (spec §6 "source.repository").
type SourceOverride struct {
	Repository string `toml:"repository"`
	Type       string `toml:"type"`
	Commit     string `toml:"commit"`
	Branch     string `toml:"branch"`
}

// Exclude lists glob patterns (github.com/gobwas/glob syntax) for paths
// the façade should never walk.
type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

// WatchConfig governs the optional fsnotify-driven re-index loop.
type WatchConfig struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
}

// MetricsConfig governs the optional prometheus exporter.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// MCPConfig governs the optional stdio MCP tool server.
type MCPConfig struct {
	Enabled          bool          `toml:"enabled"`
	ServerName       string        `toml:"server_name"`
	RequestTimeout   time.Duration `toml:"request_timeout"`
	MaxResponseItems int           `toml:"max_response_items"`

	RateLimitEnabled  bool `toml:"rate_limit_enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Config is the full surface recognized by the core (spec §6) plus the
// ambient stack additions of §10.6.
type Config struct {
	WorkspaceRoot       string `toml:"workspace_root"`
	ProjectName         string `toml:"project_name"`
	NoContents          bool   `toml:"no_contents"`
	NoProjectReferences bool   `toml:"no_project_references"`

	Moniker MonikerMode  `toml:"moniker"`
	ID      IDPolicy     `toml:"id"`
	Format  OutputFormat `toml:"output_format"`
	Out     string       `toml:"out"`

	Package           string             `toml:"package"`
	PublishedPackages []PublishedPackage `toml:"published_packages"`

	// PackageCachePath, when set, backs the PackageInformation dedup
	// cache with a sqlite file at this path instead of the default
	// in-memory map, so a long-running MCP server process shares the
	// table across repeated index_workspace calls (spec §11.9).
	PackageCachePath string `toml:"package_cache_path"`

	SourceRepository *SourceOverride `toml:"source_repository"`
	ProbeRepository  bool            `toml:"probe_repository"`
	MonikerScheme    string          `toml:"moniker_scheme"`

	Exclude Exclude       `toml:"exclude"`
	Watch   WatchConfig   `toml:"watch"`
	Metrics MetricsConfig `toml:"metrics"`
	MCP     MCPConfig     `toml:"mcp"`
}
