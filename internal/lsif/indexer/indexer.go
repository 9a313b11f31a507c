// # internal/lsif/indexer/indexer.go
// Package indexer implements the Project Indexer (spec §4.5): it walks
// one compilation unit, asking the type-checker façade to resolve
// symbols and depositing facts into the Data Manager.
package indexer

import (
	"context"
	"fmt"
	"time"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/errors"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/datamanager"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
)

// Indexer walks a single project's files against a TypeChecker façade.
type Indexer struct {
	checker  ports.TypeChecker
	data     *datamanager.Manager
	reporter ports.Reporter
	cfg      *config.Config
}

// New constructs an Indexer.
func New(checker ports.TypeChecker, data *datamanager.Manager, reporter ports.Reporter, cfg *config.Config) *Indexer {
	return &Indexer{checker: checker, data: data, reporter: reporter, cfg: cfg}
}

// IndexProject walks every file of project not already owned by an
// earlier-indexed dependent project, then closes the project (spec
// §4.5). projectVertex is the already-emitted Project vertex's ID.
func (ix *Indexer) IndexProject(ctx context.Context, projectVertex model.ID, project string, excludedFiles map[string]bool, resolver *moniker.Resolver) (ports.ProjectSummary, error) {
	start := time.Now()
	symbolsBefore := ix.data.SymbolCount()

	files, err := ix.checker.Files(ctx, project)
	if err != nil {
		return ports.ProjectSummary{}, errors.Wrap(err, errors.CodeChecker, "list project files").(*errors.DomainError).WithContext(errors.CtxProject, project)
	}

	summary := ports.ProjectSummary{Project: project}

	finish := func() ports.ProjectSummary {
		summary.SymbolCount = ix.data.SymbolCount() - symbolsBefore
		summary.ElapsedMS = time.Since(start).Milliseconds()
		return summary
	}

	for _, file := range files {
		if excludedFiles[file] {
			continue
		}
		if err := ix.indexFile(ctx, projectVertex, project, file, resolver); err != nil {
			return finish(), err
		}
		summary.DocumentCount++
		ix.reporter.Progress(summary.DocumentCount)
	}

	aliases, err := ix.checker.Aliases(ctx, project)
	if err != nil {
		return finish(), errors.Wrap(err, errors.CodeChecker, "list aliases").(*errors.DomainError).WithContext(errors.CtxProject, project)
	}
	for _, alias := range aliases {
		if err := ix.recordAlias(ctx, projectVertex, project, alias, resolver); err != nil {
			return finish(), err
		}
	}

	if err := ix.data.CloseProject(projectVertex); err != nil {
		return finish(), err
	}
	return finish(), nil
}

// indexFile opens one Document, walks its occurrences, then
// closes it (spec §4.5 step 2, and §4.4's document lifecycle: a
// document's Range set is complete the moment its file's walk ends).
func (ix *Indexer) indexFile(ctx context.Context, projectVertex model.ID, project, file string, resolver *moniker.Resolver) error {
	contents := ""
	if !ix.cfg.NoContents {
		var err error
		contents, err = ix.checker.Contents(ctx, file)
		if err != nil {
			return errors.Wrap(err, errors.CodeSinkIO, "read file contents").(*errors.DomainError).WithContext(errors.CtxPath, file)
		}
	}
	language := ix.checker.Language(file)

	if _, err := ix.data.OpenDocument(file, language, contents); err != nil {
		return err
	}

	occurrences, err := ix.checker.Occurrences(ctx, project, file)
	if err != nil {
		return errors.Wrap(err, errors.CodeChecker, "list occurrences").(*errors.DomainError).WithContext(errors.CtxPath, file)
	}
	for _, occ := range occurrences {
		if err := ix.recordOccurrence(ctx, projectVertex, project, file, occ, resolver); err != nil {
			return err
		}
	}

	return ix.data.CloseDocument(projectVertex, file)
}

func (ix *Indexer) recordOccurrence(ctx context.Context, projectVertex model.ID, project, file string, occ ports.Occurrence, resolver *moniker.Resolver) error {
	origin, ok := ix.checker.Resolve(ctx, project, occ.Symbol)
	if !ok {
		// Edge case (spec §4.5): the façade reports no declaration for
		// a referenced symbol. Without a declaration file there is no
		// basis to reduce it to an import moniker, so it is skipped
		// with a diagnostic.
		ix.reporter.ReportInternalSymbol(ports.Diagnostic{
			Symbol:      occ.Symbol,
			DisplayName: string(occ.Symbol),
			ProblemFile: file,
			ProblemSpan: occ.Span,
		})
		return nil
	}

	referencedOutside := origin.DeclarationFile != "" && origin.DeclarationFile != file
	result := resolver.Resolve(origin, referencedOutside)

	return ix.data.RecordOccurrence(projectVertex, file, occ.Symbol, occ.Kind, occ.Span, origin, datamanager.NewMonikerResult(result))
}

func (ix *Indexer) recordAlias(ctx context.Context, projectVertex model.ID, project string, alias ports.Alias, resolver *moniker.Resolver) error {
	fromOrigin, ok := ix.checker.Resolve(ctx, project, alias.From)
	if !ok {
		return nil
	}
	toOrigin, ok := ix.checker.Resolve(ctx, project, alias.To)
	if !ok {
		return nil
	}
	result := resolver.Resolve(toOrigin, false)

	if err := ix.data.Alias(alias.From, alias.To, fromOrigin, toOrigin, projectVertex, datamanager.NewMonikerResult(result)); err != nil {
		if errors.IsCode(err, errors.CodeAliasCycle) {
			ix.reporter.ReportInternalSymbol(ports.Diagnostic{
				Symbol:      alias.From,
				DisplayName: fmt.Sprintf("%s -> %s (cycle refused)", alias.From, alias.To),
			})
			return nil
		}
		return err
	}
	return nil
}
