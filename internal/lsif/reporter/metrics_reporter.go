// # internal/lsif/reporter/metrics_reporter.go
package reporter

import "lsifgo/internal/core/ports"

// WithMetrics decorates inner so every diagnostic it receives also
// increments ReportedDiagnosticsTotal, and every project-done event
// feeds ProjectIndexDuration.
type metricsReporter struct {
	inner ports.Reporter
}

func WithMetrics(inner ports.Reporter) ports.Reporter {
	return &metricsReporter{inner: inner}
}

func (r *metricsReporter) Begin(totalProjects int) { r.inner.Begin(totalProjects) }

func (r *metricsReporter) Progress(documentsIndexed int) {
	sampleHeap()
	r.inner.Progress(documentsIndexed)
}

func (r *metricsReporter) ProjectDone(summary ports.ProjectSummary) {
	ProjectIndexDuration.WithLabelValues(summary.Project).Observe(float64(summary.ElapsedMS) / 1000)
	r.inner.ProjectDone(summary)
}

func (r *metricsReporter) ReportInternalSymbol(d ports.Diagnostic) {
	ReportedDiagnosticsTotal.Inc()
	r.inner.ReportInternalSymbol(d)
}

func (r *metricsReporter) End() { r.inner.End() }
