// # cmd/lsifgo/app.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/facade"
	"lsifgo/internal/gitinfo"
	"lsifgo/internal/lsif/datamanager"
	"lsifgo/internal/lsif/emit"
	"lsifgo/internal/lsif/ids"
	"lsifgo/internal/lsif/moniker/pkgcache"
	"lsifgo/internal/lsif/pipeline"
	"lsifgo/internal/lsif/reporter"
	"lsifgo/internal/mcpserver"
)

// app bundles one cfg's worth of wiring so both a one-shot CLI run and a
// watch-mode / MCP re-index can drive a fresh Driver per invocation
// without reconstructing the façade's expensive parser pools each time.
type app struct {
	cfg      *config.Config
	checker  *facade.Checker
	manifest *facade.Manifests
	prober   ports.SourceControlProber
	cache    pkgcache.Cache

	// ui, when set, replaces the default Stream reporter with a
	// bubbletea progress display for the next Index call. main sets
	// this only for the one-shot -ui path, never alongside -watch: a
	// one-shot program has a "done" state for the UI to settle into,
	// where a watch-triggered re-index never does.
	ui *reporter.TUI

	// logOut is where the Stream reporter writes when ui is nil.
	// Defaults to os.Stderr; main redirects it to -log-file's handle
	// when set, alongside the slog logger, so progress lines and log
	// lines land in the same place.
	logOut io.Writer
}

// newApp constructs the long-lived components shared by every index run
// against cfg: the façade (whose symbol table is deliberately global
// across repeated Index calls against the same workspace, matching its
// own cross-project resolution model) and the optional git prober.
func newApp(cfg *config.Config) (*app, error) {
	var prober ports.SourceControlProber
	if cfg.ProbeRepository {
		p := gitinfo.New()
		prober = p
	}

	cache, err := openPackageCache(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		checker:  facade.New(cfg),
		manifest: facade.NewManifests(cfg),
		prober:   prober,
		cache:    cache,
		logOut:   os.Stderr,
	}, nil
}

func openPackageCache(cfg *config.Config) (pkgcache.Cache, error) {
	if cfg.PackageCachePath == "" {
		return pkgcache.NewMemory(), nil
	}
	return pkgcache.OpenSQLite(cfg.PackageCachePath)
}

// Index runs one full Driver.Run against the given request, writing the
// LSIF dump to req.Out (or stdout when empty) and returning the
// per-project summaries the reporter collected.
func (a *app) Index(ctx context.Context, req mcpserver.IndexRequest) (mcpserver.IndexResult, error) {
	cfg := *a.cfg
	if req.WorkspaceRoot != "" {
		cfg.WorkspaceRoot = req.WorkspaceRoot
	}
	if req.ProjectName != "" {
		cfg.ProjectName = req.ProjectName
	}
	if req.Out != "" {
		cfg.Out = req.Out
	}

	out, closeOut, err := openOut(cfg.Out)
	if err != nil {
		return mcpserver.IndexResult{}, err
	}
	defer closeOut()

	// Progress and diagnostics always go to logOut or the TUI, never to
	// out: when cfg.Out is empty the LSIF dump itself is written to
	// stdout, and interleaving a second stream into it would corrupt
	// the dump for a downstream single-pass consumer.
	var inner ports.Reporter = reporter.NewStream(a.logOut, nil)
	if a.ui != nil {
		inner = a.ui
	}
	collector := &summaryCollector{inner: inner}
	var rep ports.Reporter = collector
	if cfg.Metrics.Enabled {
		rep = reporter.WithMetrics(collector)
	}

	drv, err := buildDriver(&cfg, a.checker, a.manifest, a.prober, rep, a.cache, out)
	if err != nil {
		return mcpserver.IndexResult{}, err
	}

	if err := drv.Run(ctx, cfg.ProjectName); err != nil {
		return mcpserver.IndexResult{}, err
	}

	return mcpserver.IndexResult{Summaries: collector.summaries}, nil
}

// buildDriver constructs a fresh Builder/Emitter/Manager/Driver for one
// run. The Generator and Manager are not reused across runs: every
// index must start its vertex numbering at 1 and its symbol table empty, per
// spec §4.1's "sequential from 1" ID policy contract.
func buildDriver(cfg *config.Config, checker ports.TypeChecker, manifest ports.ManifestReader, prober ports.SourceControlProber, rep ports.Reporter, cache pkgcache.Cache, out io.Writer) (*pipeline.Driver, error) {
	gen := ids.NewGenerator(ids.Policy(cfg.ID))
	builder := ids.NewBuilder(gen, cfg.NoContents)
	emitter := emit.New(emit.Format(cfg.Format), out)
	if cfg.Metrics.Enabled {
		emitter = reporter.InstrumentEmitter(emitter)
	}
	data := datamanager.New(builder, emitter, rep, cache)
	return pipeline.New(checker, manifest, prober, rep, cfg, builder, emitter, data), nil
}

// serveMetrics blocks serving the Prometheus exporter until addr fails
// to bind or the process exits; main runs it in its own goroutine.
func serveMetrics(addr string) error {
	return reporter.ServeMetrics(addr)
}

func openOut(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output %q: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// summaryCollector wraps whichever ports.Reporter a run is using
// (stderr Stream or the -ui TUI) and additionally retains each
// project's summary so callers (the CLI's final print, the MCP tool's
// structured response) can read it back after Driver.Run returns.
type summaryCollector struct {
	inner     ports.Reporter
	summaries []ports.ProjectSummary
}

func (c *summaryCollector) Begin(total int) { c.inner.Begin(total) }
func (c *summaryCollector) Progress(n int)  { c.inner.Progress(n) }
func (c *summaryCollector) End()            { c.inner.End() }

func (c *summaryCollector) ProjectDone(s ports.ProjectSummary) {
	c.summaries = append(c.summaries, s)
	c.inner.ProjectDone(s)
}

func (c *summaryCollector) ReportInternalSymbol(d ports.Diagnostic) {
	c.inner.ReportInternalSymbol(d)
}

// printSummary writes the human-readable run summary the non-watch,
// non-MCP CLI path prints after a completed index, mirroring the
// teacher's own PrintSummary call in its non-UI path.
func printSummary(w io.Writer, summaries []ports.ProjectSummary) {
	fmt.Fprintln(w, "Index summary")
	fmt.Fprintln(w, "=============")
	var totalSymbols, totalDocs int
	for _, s := range summaries {
		fmt.Fprintf(w, "- %s: %d symbols, %d documents, %dms\n", s.Project, s.SymbolCount, s.DocumentCount, s.ElapsedMS)
		totalSymbols += s.SymbolCount
		totalDocs += s.DocumentCount
	}
	fmt.Fprintf(w, "%d project(s), %d symbols, %d documents\n", len(summaries), totalSymbols, totalDocs)
}
