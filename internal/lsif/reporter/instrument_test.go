// # internal/lsif/reporter/instrument_test.go
package reporter

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"lsifgo/internal/lsif/model"
)

type fakeInnerEmitter struct{ elements []model.Element }

func (f *fakeInnerEmitter) Start() error { return nil }
func (f *fakeInnerEmitter) Emit(el model.Element) error {
	f.elements = append(f.elements, el)
	return nil
}
func (f *fakeInnerEmitter) End() error { return nil }

func TestInstrumentEmitterCountsVerticesAndEdges(t *testing.T) {
	inner := &fakeInnerEmitter{}
	emitter := InstrumentEmitter(inner)

	before := testutil.ToFloat64(VerticesEmittedTotal.WithLabelValues(string(model.LabelProject)))
	require.NoError(t, emitter.Emit(model.NewProject("1", "app", "go")))
	require.Equal(t, before+1, testutil.ToFloat64(VerticesEmittedTotal.WithLabelValues(string(model.LabelProject))))

	beforeEdge := testutil.ToFloat64(EdgesEmittedTotal.WithLabelValues(string(model.LabelNext)))
	require.NoError(t, emitter.Emit(model.NewNext("2", "a", "b")))
	require.Equal(t, beforeEdge+1, testutil.ToFloat64(EdgesEmittedTotal.WithLabelValues(string(model.LabelNext))))

	require.Len(t, inner.elements, 2)
}
