// # internal/lsif/reporter/reporter.go
// Package reporter provides the pluggable ports.Reporter sinks named in
// spec §6 "Reporters are pluggable (null, stdout stream, file stream)."
package reporter

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"lsifgo/internal/core/ports"
)

// Null discards every event. Used in tests and by the MCP tool surface,
// which reports failures through its own JSON-RPC response instead.
type Null struct{}

func (Null) Begin(int)                        {}
func (Null) Progress(int)                     {}
func (Null) ProjectDone(ports.ProjectSummary) {}
func (Null) ReportInternalSymbol(ports.Diagnostic) {}
func (Null) End()                             {}

// Stream writes a human-readable progress line per event to w, and logs
// every diagnostic via logger. It is safe for concurrent use because the
// watch-mode driver may report from a re-index triggered while a prior
// run's summary is still being printed.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
}

// NewStream constructs a Stream reporter. logger defaults to
// slog.Default() when nil, matching the teacher's library-package
// convention of never calling slog.SetDefault itself.
func NewStream(w io.Writer, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{w: w, logger: logger}
}

func (s *Stream) Begin(totalProjects int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "indexing %d project(s)\n", totalProjects)
}

func (s *Stream) Progress(documentsIndexed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "  %d document(s) indexed\n", documentsIndexed)
}

func (s *Stream) ProjectDone(summary ports.ProjectSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "project %s done: %d document(s), %d symbol(s), %dms\n",
		summary.Project, summary.DocumentCount, summary.SymbolCount, summary.ElapsedMS)
}

func (s *Stream) ReportInternalSymbol(d ports.Diagnostic) {
	s.logger.Warn("symbol treated as internal although referenced externally",
		"symbol", d.Symbol, "display_name", d.DisplayName, "file", d.ProblemFile)
}

func (s *Stream) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, "done")
}
