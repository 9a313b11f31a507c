// # internal/lsif/datamanager/datamanager.go
// Package datamanager is the lifetime controller for deferred per-symbol
// and per-document data (spec §4.4): it holds open ResultSets, pending
// range assignments, and partial edge sets until it is safe to flush
// them, and owns the global/document-local partitioning decision.
//
// The Manager is not safe for concurrent use — spec §5 assumes a single
// cooperative caller (the Project Indexer via the Pipeline Driver) and
// no suspension inside a project walk, so no locking is done here.
package datamanager

import (
	"fmt"

	"lsifgo/internal/core/errors"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/emit"
	"lsifgo/internal/lsif/ids"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
	"lsifgo/internal/lsif/moniker/pkgcache"
)

// Manager is the Data Manager component.
type Manager struct {
	builder  *ids.Builder
	emitter  emit.Emitter
	reporter ports.Reporter
	pkgCache pkgcache.Cache

	// symbols holds every record the pipeline has ever allocated,
	// keyed by symbol identity. Global records stay here for the
	// pipeline's lifetime; document-local records are removed once
	// their declaring document closes.
	symbols map[ports.SymbolID]*symbolRecord

	// documents maps a URI to its emitted Document vertex ID. A
	// document is emitted at most once per dump even if revisited by a
	// later project (spec §4.4 "documents are re-entrant across
	// projects but emitted only once per unique URI").
	documents map[string]model.ID
	// openDocuments tracks documents opened but not yet closed, so
	// RecordOccurrence can validate its caller.
	openDocuments map[string]bool
	// localByDocument indexes document-local records by their
	// declaring document, for O(local symbols) close instead of a full
	// table scan.
	localByDocument map[string][]ports.SymbolID

	// packageInfoIDs dedups PackageInformation vertices by the cache
	// key, independent of pkgCache's own persistence choice.
	packageInfoIDs map[pkgcache.Key]model.ID

	// pendingPipelineClose lists global symbols whose referenceResult
	// must wait for pipeline close because an importer project may
	// still contribute references (spec §4.4 "global... finalization
	// happens... on pipeline close for results shared across
	// projects").
	pendingPipelineClose []*symbolRecord

	// allocated counts every symbolRecord ever created, monotonically —
	// unlike len(symbols) it never drops when a document-local record is
	// retired at document close, so a caller can diff two readings to
	// learn how many symbols were newly seen across some span of calls.
	allocated int
}

// SymbolCount returns the number of distinct symbols allocated so far
// across the Manager's lifetime.
func (m *Manager) SymbolCount() int {
	return m.allocated
}

// New constructs a Manager.
func New(builder *ids.Builder, emitter emit.Emitter, reporter ports.Reporter, pkgCache pkgcache.Cache) *Manager {
	return &Manager{
		builder:         builder,
		emitter:         emitter,
		reporter:        reporter,
		pkgCache:        pkgCache,
		symbols:         make(map[ports.SymbolID]*symbolRecord),
		documents:       make(map[string]model.ID),
		openDocuments:   make(map[string]bool),
		localByDocument: make(map[string][]ports.SymbolID),
		packageInfoIDs:  make(map[pkgcache.Key]model.ID),
	}
}

func (m *Manager) emit(el model.Element) error {
	if err := m.emitter.Emit(el); err != nil {
		return errors.Wrap(err, errors.CodeSinkIO, fmt.Sprintf("emit %s", el.ElementLabel()))
	}
	return nil
}

// OpenDocument emits (or reuses) a Document vertex for uri and marks it
// open for the current project.
func (m *Manager) OpenDocument(uri, language, contents string) (model.ID, error) {
	if id, ok := m.documents[uri]; ok {
		m.openDocuments[uri] = true
		return id, nil
	}
	doc := m.builder.Document(uri, language, contents)
	if err := m.emit(doc); err != nil {
		return "", err
	}
	m.documents[uri] = doc.ElementID()
	m.openDocuments[uri] = true
	return doc.ElementID(), nil
}

// CloseDocument retires every document-local symbol whose only
// contributing document is uri, flushes pending item edges targeting
// uri for any still-open global symbol, and emits a `contains` edge
// from project to this Document (spec §4.4 "Document lifecycle
// events").
func (m *Manager) CloseDocument(project model.ID, uri string) error {
	docID, ok := m.documents[uri]
	if !ok {
		return errors.New(errors.CodeInternal, "closeDocument on a document never opened").(*errors.DomainError).WithContext(errors.CtxDocument, uri)
	}
	delete(m.openDocuments, uri)

	for _, symID := range m.localByDocument[uri] {
		rec, ok := m.symbols[symID]
		if !ok || rec.closed {
			continue
		}
		if err := m.finalizeRecord(rec); err != nil {
			return err
		}
		rec.closed = true
		delete(m.symbols, symID)
	}
	delete(m.localByDocument, uri)

	for _, rec := range m.symbols {
		if rec.part != partitionGlobal || rec.closed {
			continue
		}
		// Only declaration-bearing kinds flush eagerly per document —
		// reference contributions stay open so later-indexed importer
		// projects can still add to the same referenceResult, and are
		// finalized at project/pipeline close instead (spec §4.4).
		if err := m.flushDocumentForKind(rec, resultDefinition, uri); err != nil {
			return err
		}
		if err := m.flushDocumentForKind(rec, resultTypeDefinition, uri); err != nil {
			return err
		}
	}

	contains := m.builder.Contains(project, []model.ID{docID})
	return m.emit(contains)
}

// allocateSymbol first-encounter-initializes a symbol record: ResultSet,
// moniker, and packageInformation are emitted immediately (spec §4.4
// "Emission policy" — these are emitted the first time any Range
// references the symbol, which is exactly when allocateSymbol runs).
func (m *Manager) allocateSymbol(origin ports.SymbolOrigin, symID ports.SymbolID, project model.ID, result moniker.Result, declaringDocument string) (*symbolRecord, error) {
	if rec, ok := m.symbols[symID]; ok {
		return rec, nil
	}

	part := partitionLocal
	if result.Kind == moniker.KindExport || result.Kind == moniker.KindImport || origin.CrossesDocument {
		part = partitionGlobal
	}

	resultSet := m.builder.ResultSet()
	if err := m.emit(resultSet); err != nil {
		return nil, err
	}

	rec := newSymbolRecord(symID, resultSet.ElementID(), part, project)
	rec.hoverText = origin.HoverText
	rec.monikerResult = result
	rec.declaringDocument = declaringDocument

	if err := m.emitMoniker(rec); err != nil {
		return nil, err
	}

	m.symbols[symID] = rec
	m.allocated++
	if part == partitionLocal {
		m.localByDocument[declaringDocument] = append(m.localByDocument[declaringDocument], symID)
	}
	return rec, nil
}

func (m *Manager) emitMoniker(rec *symbolRecord) error {
	if rec.monikerResult.Identifier == "" {
		return nil
	}
	monikerKind := model.MonikerLocal
	switch rec.monikerResult.Kind {
	case moniker.KindImport:
		monikerKind = model.MonikerImport
	case moniker.KindExport:
		monikerKind = model.MonikerExport
	}

	monikerVertex := m.builder.Moniker(rec.monikerResult.Scheme, rec.monikerResult.Identifier, monikerKind)
	if err := m.emit(monikerVertex); err != nil {
		return err
	}
	edge := m.builder.MonikerEdge(rec.resultSetID, monikerVertex.ElementID())
	if err := m.emit(edge); err != nil {
		return err
	}
	rec.monikerEmitted = true

	if monikerKind == model.MonikerLocal {
		return nil
	}
	pkg := rec.monikerResult.Package
	pkgID, err := m.packageInformationID(pkgcache.Key{Name: pkg.Name, Version: pkg.Version, Manager: pkg.Manager}, pkg)
	if err != nil {
		return err
	}
	pkgEdge := m.builder.PackageInformationEdge(monikerVertex.ElementID(), pkgID)
	return m.emit(pkgEdge)
}

// packageInformationID returns the vertex ID for key, creating and
// emitting the PackageInformation vertex on first use (spec §3: "one
// per distinct package"). The allocate closure is only invoked by
// pkgCache when key is genuinely new, so the vertex itself is created
// exactly once regardless of which backend pkgCache uses.
func (m *Manager) packageInformationID(key pkgcache.Key, pkg ports.PackageManifest) (model.ID, error) {
	if id, ok := m.packageInfoIDs[key]; ok {
		return id, nil
	}
	var emitErr error
	id, _ := m.pkgCache.GetOrAllocate(key, func() model.ID {
		vertex := m.builder.PackageInformation(pkg.Name, pkg.Manager, pkg.Version, pkg.Repository)
		if err := m.emit(vertex); err != nil {
			emitErr = err
			return ""
		}
		return vertex.ElementID()
	})
	if emitErr != nil {
		return "", emitErr
	}
	m.packageInfoIDs[key] = id
	return id, nil
}
