// # cmd/lsifgo/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lsifgo/internal/core/config"
	"lsifgo/internal/lsif/reporter"
	"lsifgo/internal/mcpserver"
	"lsifgo/internal/watchmode"
)

const version = "0.1.0"

var (
	configPath = flag.String("config", "./lsifgo.toml", "Path to config file")
	out        = flag.String("out", "", "Output path for the LSIF dump (default: stdout)")
	format     = flag.String("format", "", "Output format: json, line, vis, graphson")
	idPolicy   = flag.String("id", "", "ID generation policy: number, uuid")
	moniker    = flag.String("moniker", "", "Moniker mode: strict, lenient")
	pkg        = flag.String("package", "", "Path to the workspace's package manifest")
	probeRepo  = flag.Bool("probe-repository", false, "Fill Source vertex commit/branch from the local git checkout")
	watch      = flag.Bool("watch", false, "Re-index on source file changes instead of exiting after one run")
	mcp        = flag.Bool("mcp", false, "Serve the index_workspace tool over stdio instead of indexing once")
	metrics    = flag.Bool("metrics", false, "Serve Prometheus metrics while running")
	ui         = flag.Bool("ui", false, "Show a terminal progress display for the initial index instead of stderr log lines")
	logFile    = flag.String("log-file", "", "Redirect log and progress output to this file instead of stderr")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("lsifgo v%s\n", version)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logOut := io.Writer(os.Stderr)
	if *logFile != "" {
		f, err := reporter.OpenFile(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		} else {
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./lsifgo.toml" {
			cfg, err = config.Load("./lsifgo.example.toml")
		}
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	config.ApplyEnvOverrides(cfg)
	applyFlagOverrides(cfg)

	if flag.NArg() > 0 {
		cfg.WorkspaceRoot = flag.Arg(0)
	}
	if cfg.WorkspaceRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			slog.Error("failed to resolve working directory", "error", err)
			os.Exit(1)
		}
		cfg.WorkspaceRoot = wd
	}

	a, err := newApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	a.logOut = logOut

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go func() {
			if err := serveMetrics(cfg.Metrics.Addr); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if *mcp {
		if *ui {
			fmt.Fprintln(os.Stderr, "-ui and -mcp cannot be used together")
			os.Exit(1)
		}
		runMCP(ctx, cfg, a)
		return
	}

	if *ui && (cfg.Out == "" || cfg.Out == "-") {
		// Both the bubbletea display and a stdout LSIF dump draw on
		// the terminal; the teacher hits the same conflict in its own
		// -ui mode and resolves it by moving its log output off
		// stdout instead, since it has no equivalent "dump" stream.
		fmt.Fprintln(os.Stderr, "-ui requires -out (stdout is reserved for the terminal display)")
		os.Exit(1)
	}

	var uiDone chan struct{}
	if *ui {
		a.ui = reporter.NewTUI()
		uiDone = make(chan struct{})
		go func() {
			defer close(uiDone)
			if err := a.ui.Run(); err != nil {
				slog.Error("terminal display stopped", "error", err)
			}
		}()
	}

	summaries, err := a.Index(ctx, mcpserver.IndexRequest{})
	if *ui {
		<-uiDone
	}
	if err != nil {
		slog.Error("index failed", "error", err)
		os.Exit(1)
	}
	printSummary(os.Stdout, summaries.Summaries)
	a.ui = nil

	if !*watch {
		return
	}

	if err := runWatch(ctx, cfg, a); err != nil {
		slog.Error("watch mode failed", "error", err)
		os.Exit(1)
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if *out != "" {
		cfg.Out = *out
	}
	if *format != "" {
		cfg.Format = config.OutputFormat(*format)
	}
	if *idPolicy != "" {
		cfg.ID = config.IDPolicy(*idPolicy)
	}
	if *moniker != "" {
		cfg.Moniker = config.MonikerMode(*moniker)
	}
	if *pkg != "" {
		cfg.Package = *pkg
	}
	if *probeRepo {
		cfg.ProbeRepository = true
	}
	if *watch {
		cfg.Watch.Enabled = true
	}
	if *mcp {
		cfg.MCP.Enabled = true
	}
	if *metrics {
		cfg.Metrics.Enabled = true
	}
}

func runMCP(ctx context.Context, cfg *config.Config, a *app) {
	srv, err := mcpserver.New(cfg.MCP, a)
	if err != nil {
		slog.Error("failed to start MCP server", "error", err)
		os.Exit(1)
	}
	if err := srv.Run(ctx); err != nil {
		slog.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}

// runWatch re-indexes the workspace whenever fsnotify observes a source
// file change, cancelling any in-flight run before starting the next —
// the Driver's own cancellation only checks ctx.Done() between projects,
// so a cancelled run unwinds at its next project boundary rather than
// mid-project.
func runWatch(ctx context.Context, cfg *config.Config, a *app) error {
	loop := watchmode.NewLoop(func(runCtx context.Context) error {
		_, err := a.Index(runCtx, mcpserver.IndexRequest{})
		return err
	})
	defer loop.Stop()

	w, err := watchmode.New(cfg.Watch.Debounce, cfg.Exclude.Dirs, cfg.Exclude.Files, nil, func(changed []string) {
		loop.Trigger(ctx, changed)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(ctx, []string{cfg.WorkspaceRoot}); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}
