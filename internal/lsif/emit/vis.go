// # internal/lsif/emit/vis.go
package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"lsifgo/internal/lsif/model"
)

// visEmitter renders the stream as a vis-network-style {nodes, edges}
// ingestion document. Structurally grounded on the teacher's two-pass
// generators (collect everything, then render once at End): vertices
// become nodes, edges become edges, and End is where the full document is
// finally written — the only one of the four formats that cannot stream
// incrementally, because a graph-database loader wants one coherent
// document rather than a framed sequence.
type visEmitter struct {
	w     io.Writer
	nodes []visNode
	edges []visEdge
}

type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
}

type visEdge struct {
	ID       string `json:"id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Label    string `json:"label"`
	Document string `json:"document,omitempty"`
	Property string `json:"property,omitempty"`
}

func newVisEmitter(w io.Writer) *visEmitter {
	return &visEmitter{w: w}
}

func (e *visEmitter) Start() error { return nil }

func (e *visEmitter) Emit(el model.Element) error {
	switch el.ElementType() {
	case model.TypeVertex:
		e.nodes = append(e.nodes, visNode{
			ID:    string(el.ElementID()),
			Label: string(el.ElementLabel()),
			Group: string(el.ElementLabel()),
		})
	case model.TypeEdge:
		from, to, doc, prop := edgeEndpoints(el)
		e.edges = append(e.edges, visEdge{
			ID:       string(el.ElementID()),
			From:     string(from),
			To:       string(to),
			Label:    string(el.ElementLabel()),
			Document: string(doc),
			Property: prop,
		})
	}
	return nil
}

func (e *visEmitter) End() error {
	doc := struct {
		Nodes []visNode `json:"nodes"`
		Edges []visEdge `json:"edges"`
	}{Nodes: e.nodes, Edges: e.edges}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vis document: %w", err)
	}
	_, err = e.w.Write(data)
	return err
}

// edgeEndpoints extracts the (from, to, document, property) tuple common
// to every edge variant the core emits, fanning the first inV out as the
// representative "to" node for multi-target edges (contains, item).
func edgeEndpoints(el model.Element) (from, to, document model.ID, property string) {
	switch v := el.(type) {
	case model.Contains:
		from = v.OutV
		if len(v.InVs) > 0 {
			to = v.InVs[0]
		}
	case model.Next:
		from, to = v.OutV, v.InV
	case model.Item:
		from = v.OutV
		if len(v.InVs) > 0 {
			to = v.InVs[0]
		}
		document = v.Document
		property = string(v.Property)
	case model.MonikerEdge:
		from, to = v.OutV, v.InV
	case model.PackageInformationEdge:
		from, to = v.OutV, v.InV
	case model.ResultEdge:
		from, to = v.OutV, v.InV
	}
	return
}
