// # internal/lsif/datamanager/flow.go
package datamanager

import (
	"lsifgo/internal/core/errors"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
)

// RecordOccurrence is the Project Indexer's sole write entry point for
// one syntactic occurrence (spec §4.5 step 3): it find-or-creates the
// symbol's record, emits a Range, attaches it to the ResultSet via
// `next`, and deposits the occurrence into the right per-kind
// accumulator.
func (m *Manager) RecordOccurrence(project model.ID, document string, symID ports.SymbolID, kind ports.OccurrenceKind, span ports.Span, origin ports.SymbolOrigin, resolved MonikerResult) error {
	if !m.openDocuments[document] {
		return errors.New(errors.CodeInternal, "recordOccurrence on a document that is not open").(*errors.DomainError).WithContext(errors.CtxDocument, document)
	}

	rec, err := m.allocateSymbol(origin, symID, project, resolved.result, document)
	if err != nil {
		return err
	}

	rangeVertex := m.builder.Range(toModelSpan(span), string(kind))
	if err := m.emit(rangeVertex); err != nil {
		return err
	}
	next := m.builder.Next(rangeVertex.ElementID(), rec.resultSetID)
	if err := m.emit(next); err != nil {
		return err
	}

	if rec.aliasTarget != nil {
		// Occurrences of an alias still need a Range/next pair (the
		// alias name really does appear at this location) but no
		// navigational result accumulates directly under it — its
		// ResultSet forwards to the aliased symbol's via `next`
		// (spec §4.4 "Aliases").
		return nil
	}

	resultKind, property := classify(kind)
	acc := rec.accumulator(resultKind, property)
	acc.add(document, rangeVertex.ElementID())

	if resolved.internalButExternal {
		m.reporter.ReportInternalSymbol(ports.Diagnostic{
			Symbol:      symID,
			DisplayName: origin.CanonicalIdentity,
			ProblemFile: document,
			ProblemSpan: span,
		})
	}

	if rec.hoverText == "" && origin.HoverText != "" {
		rec.hoverText = origin.HoverText
	}
	return nil
}

// MonikerResult carries the moniker classification the caller (Project
// Indexer) already computed via internal/lsif/moniker for one
// occurrence's symbol, plus whether it tripped the strict-mode
// "internal symbol referenced externally" diagnostic.
type MonikerResult struct {
	result              moniker.Result
	internalButExternal bool
}

// NewMonikerResult wraps a moniker.Result computed by the caller into
// the form RecordOccurrence/Alias accept.
func NewMonikerResult(result moniker.Result) MonikerResult {
	return MonikerResult{result: result, internalButExternal: result.InternalButExternallyReferenced}
}

func classify(kind ports.OccurrenceKind) (resultKind, model.ItemProperty) {
	switch kind {
	case ports.OccurrenceDeclaration:
		return resultDefinition, model.ItemDeclarations
	case ports.OccurrenceDefinition:
		return resultDefinition, model.ItemDefinitions
	case ports.OccurrenceTypeReference:
		return resultTypeDefinition, ""
	default:
		return resultReference, model.ItemReferences
	}
}

func toModelSpan(s ports.Span) model.Span {
	return model.Span{
		Start: model.Position{Line: s.Start.Line, Character: s.Start.Character},
		End:   model.Position{Line: s.End.Line, Character: s.End.Character},
	}
}

// Alias records that symbol `from`'s ResultSet forwards to `to`'s via a
// `next` edge (spec §4.4 "Aliases"). Cycle-forming links are refused and
// reported, not fatal (spec §7's ALIAS_CYCLE, non-fatal).
func (m *Manager) Alias(from, to ports.SymbolID, fromOrigin, toOrigin ports.SymbolOrigin, project model.ID, resolvedTo MonikerResult) error {
	toRec, err := m.allocateSymbol(toOrigin, to, project, resolvedTo.result, "")
	if err != nil {
		return err
	}
	fromRec, ok := m.symbols[from]
	if !ok {
		fromRec, err = m.allocateSymbol(fromOrigin, from, project, moniker.Result{}, "")
		if err != nil {
			return err
		}
	}

	if m.wouldCycle(fromRec.resultSetID, toRec.resultSetID) {
		return errors.New(errors.CodeAliasCycle, "alias would close a next-edge cycle").(*errors.DomainError).
			WithContext(errors.CtxSymbol, string(from))
	}

	edge := m.builder.Next(fromRec.resultSetID, toRec.resultSetID)
	if err := m.emit(edge); err != nil {
		return err
	}
	fromRec.aliasTarget = &to
	return nil
}

// wouldCycle walks the alias chain starting at target looking for a
// path back to origin; the core never tracks the full next-graph, only
// aliasTarget chains, so this is a bounded walk through symbolRecords.
func (m *Manager) wouldCycle(origin, target model.ID) bool {
	seen := map[model.ID]bool{origin: true}
	current := target
	for {
		if seen[current] {
			return current == origin
		}
		seen[current] = true
		var next *model.ID
		for _, rec := range m.symbols {
			if rec.resultSetID == current && rec.aliasTarget != nil {
				if aliasedRec, ok := m.symbols[*rec.aliasTarget]; ok {
					id := aliasedRec.resultSetID
					next = &id
				}
				break
			}
		}
		if next == nil {
			return false
		}
		current = *next
	}
}

// CloseProject triggers the global-per-project flush (spec §4.5 step 5,
// §4.4 "global... finalization happens on project close for results
// scoped to the project"). Reference results stay open for pipeline
// close since importer projects indexed later may still contribute.
func (m *Manager) CloseProject(project model.ID) error {
	for _, rec := range m.symbols {
		if rec.part != partitionGlobal || rec.declaringProject != project || rec.closed {
			continue
		}
		if err := m.flushKinds(rec, resultDefinition, resultTypeDefinition); err != nil {
			return err
		}
		if err := m.flushHover(rec); err != nil {
			return err
		}
		if !rec.accumulator(resultReference, model.ItemReferences).empty() || rec.monikerResult.Kind != "" {
			m.pendingPipelineClose = append(m.pendingPipelineClose, rec)
		}
	}
	return nil
}

// ClosePipeline finalizes every symbol whose reference result was held
// open for cross-project contributions, then marks each of those
// records closed.
func (m *Manager) ClosePipeline() error {
	for _, rec := range m.pendingPipelineClose {
		if rec.closed {
			continue
		}
		if err := m.flushKinds(rec, resultReference); err != nil {
			return err
		}
		rec.closed = true
	}
	m.pendingPipelineClose = nil
	return nil
}
