// # internal/lsif/datamanager/finalize.go
package datamanager

import "lsifgo/internal/lsif/model"

var allResultKinds = []resultKind{resultDefinition, resultReference, resultTypeDefinition}

// finalizeRecord flushes every accumulated kind and the hover result for
// a document-local record at its declaring document's close (spec §4.4
// "For document-local symbols, finalization happens on document
// close").
func (m *Manager) finalizeRecord(rec *symbolRecord) error {
	if err := m.flushKinds(rec, allResultKinds...); err != nil {
		return err
	}
	return m.flushHover(rec)
}

// flushKinds finalizes every document still pending for the given kinds
// on rec, used at project/pipeline close where no more contributions
// for those kinds are expected.
func (m *Manager) flushKinds(rec *symbolRecord, kinds ...resultKind) error {
	for _, kind := range kinds {
		acc := rec.results[kind]
		if acc == nil {
			continue
		}
		pending := append([]string(nil), acc.docOrder...)
		for _, doc := range pending {
			if err := m.flushDocumentForKind(rec, kind, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) flushDocumentForKind(rec *symbolRecord, kind resultKind, doc string) error {
	acc := rec.results[kind]
	if acc == nil {
		return nil
	}
	ranges, ok := acc.perDocument[doc]
	if !ok || len(ranges) == 0 {
		return nil
	}

	vertexID, err := m.ensureResultVertex(rec, kind)
	if err != nil {
		return err
	}
	docID, ok := m.documents[doc]
	if !ok {
		docID = ""
	}
	item := m.builder.Item(vertexID, ranges, docID, acc.property)
	if err := m.emit(item); err != nil {
		return err
	}

	delete(acc.perDocument, doc)
	acc.docOrder = removeString(acc.docOrder, doc)
	return nil
}

// ensureResultVertex creates and emits a kind's result vertex and its
// ResultSet edge the first time any document needs to flush against it
// (spec §4.4 "created lazily the first time a contributing Range is
// recorded").
func (m *Manager) ensureResultVertex(rec *symbolRecord, kind resultKind) (model.ID, error) {
	acc := rec.results[kind]
	if acc.created {
		return acc.vertexID, nil
	}

	var vertex model.Element
	switch kind {
	case resultDefinition:
		vertex = m.builder.DefinitionResult()
	case resultReference:
		vertex = m.builder.ReferenceResult()
	case resultTypeDefinition:
		vertex = m.builder.TypeDefinitionResult()
	}
	if err := m.emit(vertex); err != nil {
		return "", err
	}
	acc.vertexID = vertex.ElementID()
	acc.created = true

	edge := m.resultEdge(kind, rec.resultSetID, acc.vertexID)
	if err := m.emit(edge); err != nil {
		return "", err
	}
	return acc.vertexID, nil
}

func (m *Manager) resultEdge(kind resultKind, outV, inV model.ID) model.Element {
	switch kind {
	case resultDefinition:
		return m.builder.DefinitionEdge(outV, inV)
	case resultReference:
		return m.builder.ReferencesEdge(outV, inV)
	default:
		return m.builder.TypeDefinitionEdge(outV, inV)
	}
}

func (m *Manager) flushHover(rec *symbolRecord) error {
	if rec.hoverText == "" || rec.hoverCreated {
		return nil
	}
	vertex := m.builder.HoverResult(rec.hoverText)
	if err := m.emit(vertex); err != nil {
		return err
	}
	rec.hoverResult = vertex.ElementID()
	rec.hoverCreated = true
	edge := m.builder.HoverEdge(rec.resultSetID, vertex.ElementID())
	return m.emit(edge)
}

func removeString(list []string, target string) []string {
	for i, v := range list {
		if v == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
