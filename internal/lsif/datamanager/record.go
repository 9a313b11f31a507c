// # internal/lsif/datamanager/record.go
package datamanager

import (
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
)

// partition is the global/document-local tag of spec §4.4.
type partition int

const (
	partitionGlobal partition = iota
	partitionLocal
)

// resultKind names one of the three navigational result vertex kinds a
// symbol may accumulate occurrences under.
type resultKind int

const (
	resultDefinition resultKind = iota
	resultReference
	resultTypeDefinition
)

// resultAccumulator holds the deferred state for one (symbol, kind)
// pair: the result vertex is created lazily on first contribution and
// finalized (item edges emitted) at the appropriate close boundary.
type resultAccumulator struct {
	vertexID model.ID
	created  bool
	// perDocument buckets contributing range IDs by their scoping
	// document, since spec §3 requires a separate item edge per
	// document even for a single result vertex.
	perDocument map[string][]model.ID
	// docOrder preserves first-seen order for deterministic emission.
	docOrder []string
	property model.ItemProperty
}

func newResultAccumulator(property model.ItemProperty) *resultAccumulator {
	return &resultAccumulator{perDocument: make(map[string][]model.ID), property: property}
}

func (a *resultAccumulator) add(doc string, rangeID model.ID) {
	if _, ok := a.perDocument[doc]; !ok {
		a.docOrder = append(a.docOrder, doc)
	}
	a.perDocument[doc] = append(a.perDocument[doc], rangeID)
}

func (a *resultAccumulator) empty() bool {
	return len(a.docOrder) == 0
}

// symbolRecord is the Data Manager's per-symbol state (spec §4.4
// "State").
type symbolRecord struct {
	id           ports.SymbolID
	resultSetID  model.ID
	part         partition
	hoverText    string
	hoverResult  model.ID
	hoverCreated bool

	monikerResult moniker.Result
	monikerEmitted bool

	results map[resultKind]*resultAccumulator

	// declaringDocument is set for document-local symbols: the one
	// document whose close finalizes this record.
	declaringDocument string
	// declaringProject is the project this symbol was first
	// encountered in, used to route project-close flushing.
	declaringProject model.ID

	// aliasTarget is set when the Indexer reported this symbol as an
	// alias of another; navigational results are never accumulated
	// directly under an alias (spec §4.4 "Aliases").
	aliasTarget *ports.SymbolID

	closed bool
}

func newSymbolRecord(id ports.SymbolID, resultSetID model.ID, part partition, project model.ID) *symbolRecord {
	return &symbolRecord{
		id:               id,
		resultSetID:      resultSetID,
		part:             part,
		declaringProject: project,
		results:          make(map[resultKind]*resultAccumulator),
	}
}

func (r *symbolRecord) accumulator(kind resultKind, property model.ItemProperty) *resultAccumulator {
	acc, ok := r.results[kind]
	if !ok {
		acc = newResultAccumulator(property)
		r.results[kind] = acc
	}
	return acc
}
