// # internal/lsif/reporter/reporter_test.go
package reporter

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"lsifgo/internal/core/ports"
)

func TestStreamReportsProgressAndSummary(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf, nil)

	s.Begin(2)
	s.Progress(3)
	s.ProjectDone(ports.ProjectSummary{Project: "lib", DocumentCount: 3, SymbolCount: 10, ElapsedMS: 5})
	s.End()

	out := buf.String()
	require.Contains(t, out, "indexing 2 project(s)")
	require.Contains(t, out, "3 document(s) indexed")
	require.Contains(t, out, "project lib done")
	require.Contains(t, out, "done")
}

func TestNullReporterDiscardsEverything(t *testing.T) {
	n := Null{}
	n.Begin(1)
	n.Progress(1)
	n.ProjectDone(ports.ProjectSummary{})
	n.ReportInternalSymbol(ports.Diagnostic{})
	n.End()
}

type recordingInner struct {
	diagnostics int
	summaries   []ports.ProjectSummary
}

func (r *recordingInner) Begin(int)    {}
func (r *recordingInner) Progress(int) {}
func (r *recordingInner) ProjectDone(s ports.ProjectSummary) {
	r.summaries = append(r.summaries, s)
}
func (r *recordingInner) ReportInternalSymbol(ports.Diagnostic) { r.diagnostics++ }
func (r *recordingInner) End()                                  {}

func TestWithMetricsForwardsToInnerReporter(t *testing.T) {
	inner := &recordingInner{}
	wrapped := WithMetrics(inner)

	before := testutil.ToFloat64(ReportedDiagnosticsTotal)
	wrapped.ReportInternalSymbol(ports.Diagnostic{Symbol: "s"})
	require.Equal(t, 1, inner.diagnostics)
	require.Equal(t, before+1, testutil.ToFloat64(ReportedDiagnosticsTotal))

	wrapped.ProjectDone(ports.ProjectSummary{Project: "app", ElapsedMS: 100})
	require.Len(t, inner.summaries, 1)
	require.Equal(t, "app", inner.summaries[0].Project)
}
