// # internal/lsif/reporter/instrument.go
package reporter

import (
	"lsifgo/internal/lsif/emit"
	"lsifgo/internal/lsif/model"
)

// instrumentedEmitter wraps an emit.Emitter, incrementing the
// vertices/edges-emitted counters per label so /metrics reflects dump
// size without the core package importing prometheus itself.
type instrumentedEmitter struct {
	inner emit.Emitter
}

// InstrumentEmitter decorates inner with the counters of metrics.go.
func InstrumentEmitter(inner emit.Emitter) emit.Emitter {
	return &instrumentedEmitter{inner: inner}
}

func (e *instrumentedEmitter) Start() error { return e.inner.Start() }

func (e *instrumentedEmitter) Emit(el model.Element) error {
	if err := e.inner.Emit(el); err != nil {
		return err
	}
	label := string(el.ElementLabel())
	if el.ElementType() == model.TypeEdge {
		EdgesEmittedTotal.WithLabelValues(label).Inc()
	} else {
		VerticesEmittedTotal.WithLabelValues(label).Inc()
	}
	return nil
}

func (e *instrumentedEmitter) End() error { return e.inner.End() }
