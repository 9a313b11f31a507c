// # internal/lsif/emit/graphson.go
package emit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"lsifgo/internal/lsif/model"
)

// graphSONEmitter renders each vertex/edge as a GraphSON 3.0 "extended"
// line, the TinkerPop ingestion framing: one self-describing JSON object
// per line, vertices and edges interleaved in emission order. Unlike vis
// this one streams — a property-graph loader consumes it incrementally,
// matching the line-per-element style of the teacher's internal/output/tsv.go
// generator.
type graphSONEmitter struct {
	bw *bufio.Writer
}

type graphsonVertex struct {
	ID         string                     `json:"id"`
	Label      string                     `json:"label"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
}

type graphsonEdge struct {
	ID         string                     `json:"id"`
	Label      string                     `json:"label"`
	OutV       string                     `json:"outV"`
	InV        string                     `json:"inV"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
}

func newGraphSONEmitter(w io.Writer) *graphSONEmitter {
	return &graphSONEmitter{bw: bufio.NewWriter(w)}
}

func (e *graphSONEmitter) Start() error { return nil }

func (e *graphSONEmitter) Emit(el model.Element) error {
	var payload any
	switch el.ElementType() {
	case model.TypeVertex:
		payload = graphsonVertex{ID: string(el.ElementID()), Label: string(el.ElementLabel())}
	case model.TypeEdge:
		from, to, document, property := edgeEndpoints(el)
		props := map[string]json.RawMessage{}
		if document != "" {
			props["document"] = json.RawMessage(fmt.Sprintf("%q", document))
		}
		if property != "" {
			props["property"] = json.RawMessage(fmt.Sprintf("%q", property))
		}
		payload = graphsonEdge{ID: string(el.ElementID()), Label: string(el.ElementLabel()), OutV: string(from), InV: string(to), Properties: props}
	default:
		return fmt.Errorf("graphson: unknown element type for %s", el.ElementID())
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal graphson element %s: %w", el.ElementID(), err)
	}
	if _, err := e.bw.Write(data); err != nil {
		return err
	}
	return e.bw.WriteByte('\n')
}

func (e *graphSONEmitter) End() error {
	return e.bw.Flush()
}
