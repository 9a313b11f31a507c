// # internal/core/config/env.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to cfg.
// Pattern: LSIFGO_[SECTION]_[KEY] (e.g. LSIFGO_METRICS_ADDR).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.WorkspaceRoot, "LSIFGO_WORKSPACE_ROOT")
	setEnvString(&cfg.ProjectName, "LSIFGO_PROJECT_NAME")
	setEnvBool(&cfg.NoContents, "LSIFGO_NO_CONTENTS")
	setEnvBool(&cfg.NoProjectReferences, "LSIFGO_NO_PROJECT_REFERENCES")

	if v, ok := os.LookupEnv("LSIFGO_MONIKER"); ok {
		cfg.Moniker = MonikerMode(v)
		logOverride("LSIFGO_MONIKER", v)
	}
	if v, ok := os.LookupEnv("LSIFGO_ID"); ok {
		cfg.ID = IDPolicy(v)
		logOverride("LSIFGO_ID", v)
	}
	if v, ok := os.LookupEnv("LSIFGO_OUTPUT_FORMAT"); ok {
		cfg.Format = OutputFormat(v)
		logOverride("LSIFGO_OUTPUT_FORMAT", v)
	}
	setEnvString(&cfg.Out, "LSIFGO_OUT")
	setEnvString(&cfg.Package, "LSIFGO_PACKAGE")
	setEnvString(&cfg.PackageCachePath, "LSIFGO_PACKAGE_CACHE_PATH")
	setEnvBool(&cfg.ProbeRepository, "LSIFGO_PROBE_REPOSITORY")
	setEnvString(&cfg.MonikerScheme, "LSIFGO_MONIKER_SCHEME")

	setEnvBool(&cfg.Watch.Enabled, "LSIFGO_WATCH_ENABLED")
	setEnvDuration(&cfg.Watch.Debounce, "LSIFGO_WATCH_DEBOUNCE")

	setEnvBool(&cfg.Metrics.Enabled, "LSIFGO_METRICS_ENABLED")
	setEnvString(&cfg.Metrics.Addr, "LSIFGO_METRICS_ADDR")

	setEnvBool(&cfg.MCP.Enabled, "LSIFGO_MCP_ENABLED")
	setEnvString(&cfg.MCP.ServerName, "LSIFGO_MCP_SERVER_NAME")
	setEnvDuration(&cfg.MCP.RequestTimeout, "LSIFGO_MCP_REQUEST_TIMEOUT")
	setEnvInt(&cfg.MCP.MaxResponseItems, "LSIFGO_MCP_MAX_RESPONSE_ITEMS")
	setEnvBool(&cfg.MCP.RateLimitEnabled, "LSIFGO_MCP_RATE_LIMIT_ENABLED")
	setEnvInt(&cfg.MCP.RequestsPerMinute, "LSIFGO_MCP_REQUESTS_PER_MINUTE")
	setEnvInt(&cfg.MCP.Burst, "LSIFGO_MCP_BURST")
}

func logOverride(key, val string) {
	slog.Debug("applying env override", "key", key, "value", val)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
		logOverride(key, val)
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			*target = b
			logOverride(key, val)
		}
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			*target = i
			logOverride(key, val)
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			*target = d
			logOverride(key, val)
		}
	}
}
