// # internal/core/config/loader.go
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	lsiferrors "lsifgo/internal/core/errors"
)

// Load reads and validates a TOML config file, applying defaults for
// anything left unset. A missing path is not an error: Load returns
// DefaultConfig() so the CLI can run against flags alone.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, lsiferrors.Wrap(err, lsiferrors.CodeConfig, "read config file").(*lsiferrors.DomainError).WithContext(lsiferrors.CtxPath, path)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, lsiferrors.Wrap(err, lsiferrors.CodeConfig, "parse config file").(*lsiferrors.DomainError).WithContext(lsiferrors.CtxPath, path)
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a Config with every default applied, as if an
// empty file had been loaded.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(string(cfg.Moniker)) == "" {
		cfg.Moniker = ModeLenient
	}
	if strings.TrimSpace(string(cfg.ID)) == "" {
		cfg.ID = IDNumber
	}
	if strings.TrimSpace(string(cfg.Format)) == "" {
		cfg.Format = FormatLine
	}
	if strings.TrimSpace(cfg.Out) == "" {
		cfg.Out = "-"
	}
	if strings.TrimSpace(cfg.MonikerScheme) == "" {
		cfg.MonikerScheme = "npm"
	}
	if strings.TrimSpace(cfg.WorkspaceRoot) == "" {
		cfg.WorkspaceRoot = "."
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if strings.TrimSpace(cfg.Metrics.Addr) == "" {
		cfg.Metrics.Addr = "127.0.0.1:9090"
	}
	if strings.TrimSpace(cfg.MCP.ServerName) == "" {
		cfg.MCP.ServerName = "lsifgo"
	}
	if cfg.MCP.RequestTimeout <= 0 {
		cfg.MCP.RequestTimeout = 30 * time.Second
	}
	if cfg.MCP.MaxResponseItems == 0 {
		cfg.MCP.MaxResponseItems = 500
	}
}

func validate(cfg *Config) error {
	switch cfg.Moniker {
	case ModeStrict, ModeLenient:
	default:
		return lsiferrors.New(lsiferrors.CodeConfig, "moniker must be \"strict\" or \"lenient\"").(*lsiferrors.DomainError).WithContext(lsiferrors.CtxPath, string(cfg.Moniker))
	}
	switch cfg.ID {
	case IDNumber, IDUUID:
	default:
		return lsiferrors.New(lsiferrors.CodeConfig, "id must be \"number\" or \"uuid\"")
	}
	switch cfg.Format {
	case FormatJSON, FormatLine, FormatVis, FormatGraphSON:
	default:
		return lsiferrors.New(lsiferrors.CodeConfig, "output_format must be one of json, line, vis, graphson")
	}
	if cfg.Package != "" && len(cfg.PublishedPackages) > 0 {
		return lsiferrors.New(lsiferrors.CodeConfig, "package and published_packages are mutually exclusive")
	}
	return nil
}
