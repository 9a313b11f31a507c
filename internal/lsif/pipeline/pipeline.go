// # internal/lsif/pipeline/pipeline.go
// Package pipeline implements the Pipeline Driver (spec §4.6): it orders
// the project DAG topologically, constructs a per-project Export
// Moniker resolver, invokes the Project Indexer for each project in
// turn, and triggers pipeline close once every project has walked.
package pipeline

import (
	"context"

	"lsifgo/internal/core/config"
	"lsifgo/internal/core/errors"
	"lsifgo/internal/core/ports"
	"lsifgo/internal/lsif/datamanager"
	"lsifgo/internal/lsif/emit"
	"lsifgo/internal/lsif/ids"
	"lsifgo/internal/lsif/indexer"
	"lsifgo/internal/lsif/model"
	"lsifgo/internal/lsif/moniker"
)

const toolVersion = "0.1.0"

// Driver owns the components the core wires together for one full run:
// builder, emitter, moniker resolver construction, data manager, and the
// project indexer it drives.
type Driver struct {
	checker  ports.TypeChecker
	manifest ports.ManifestReader
	prober   ports.SourceControlProber
	reporter ports.Reporter
	cfg      *config.Config

	builder *ids.Builder
	emitter emit.Emitter
	data    *datamanager.Manager
	ix      *indexer.Indexer
}

// New constructs a Driver. prober may be nil when cfg.ProbeRepository is
// false and no gitinfo adapter was wired.
func New(checker ports.TypeChecker, manifestReader ports.ManifestReader, prober ports.SourceControlProber, reporter ports.Reporter, cfg *config.Config, builder *ids.Builder, emitter emit.Emitter, data *datamanager.Manager) *Driver {
	return &Driver{
		checker:  checker,
		manifest: manifestReader,
		prober:   prober,
		reporter: reporter,
		cfg:      cfg,
		builder:  builder,
		emitter:  emitter,
		data:     data,
		ix:       indexer.New(checker, data, reporter, cfg),
	}
}

// Run executes the full pipeline against root, the workspace's entry
// project (spec §6 "projectName"). It returns a fatal error for
// configuration problems, type-checker failures, and DAG cycles;
// non-fatal conditions (alias cycles, unresolved symbols, symbols
// treated as internal although externally referenced) are reported via
// the Reporter and never fail the run.
func (d *Driver) Run(ctx context.Context, root string) error {
	order, err := d.projectOrder(ctx, root)
	if err != nil {
		return err
	}

	if err := d.emitter.Start(); err != nil {
		return errors.Wrap(err, errors.CodeSinkIO, "start emitter")
	}

	meta := d.builder.MetaData(toolVersion, d.cfg.WorkspaceRoot)
	if err := d.emitPreamble(ctx, meta); err != nil {
		return err
	}

	d.reporter.Begin(len(order))

	claimedFiles := make(map[string]bool)
	for _, project := range order {
		select {
		case <-ctx.Done():
			// Cancellation is only honored between project walks (spec
			// §5); flush what is already open and stop.
			if err := d.data.ClosePipeline(); err != nil {
				return err
			}
			return d.endEmitter()
		default:
		}

		if err := d.runProject(ctx, project, claimedFiles); err != nil {
			return err
		}
	}

	if err := d.data.ClosePipeline(); err != nil {
		return err
	}
	return d.endEmitter()
}

func (d *Driver) endEmitter() error {
	if err := d.emitter.End(); err != nil {
		return errors.Wrap(err, errors.CodeSinkIO, "end emitter")
	}
	d.reporter.End()
	return nil
}

func (d *Driver) emitPreamble(ctx context.Context, meta model.MetaData) error {
	if err := d.emit(meta); err != nil {
		return err
	}

	kind, url, commit, branch := "", "", "", ""
	if d.cfg.SourceRepository != nil {
		url = d.cfg.SourceRepository.Repository
		kind = d.cfg.SourceRepository.Type
		commit = d.cfg.SourceRepository.Commit
		branch = d.cfg.SourceRepository.Branch
	} else if d.cfg.ProbeRepository && d.prober != nil {
		probedURL, probedKind, probedCommit, probedBranch, err := d.prober.Probe(ctx, d.cfg.WorkspaceRoot)
		if err != nil {
			return errors.Wrap(err, errors.CodeChecker, "probe source control")
		}
		url, kind, commit, branch = probedURL, probedKind, probedCommit, probedBranch
	}
	source := d.builder.Source(kind, url, commit, branch)
	if err := d.emit(source); err != nil {
		return err
	}

	capabilities := d.builder.Capabilities()
	return d.emit(capabilities)
}

func (d *Driver) emit(el model.Element) error {
	if err := d.emitter.Emit(el); err != nil {
		return errors.Wrap(err, errors.CodeSinkIO, "emit "+string(el.ElementLabel()))
	}
	return nil
}

// runProject emits the Project vertex, constructs its Export Moniker
// resolver, and invokes the Project Indexer, excluding files already
// claimed by an earlier-indexed dependency project.
func (d *Driver) runProject(ctx context.Context, project string, claimedFiles map[string]bool) error {
	files, err := d.checker.Files(ctx, project)
	if err != nil {
		return errors.Wrap(err, errors.CodeChecker, "list project files").(*errors.DomainError).WithContext(errors.CtxProject, project)
	}

	kind := ""
	if len(files) > 0 {
		kind = d.checker.Language(files[0])
	}
	projectVertex := d.builder.Project(project, kind)
	if err := d.emit(projectVertex); err != nil {
		return err
	}

	resolver := d.buildResolver(project, files)

	excluded := make(map[string]bool, len(files))
	for _, f := range files {
		if claimedFiles[f] {
			excluded[f] = true
		}
	}

	summary, err := d.ix.IndexProject(ctx, projectVertex.ElementID(), project, excluded, resolver)
	if err != nil {
		return err
	}
	d.reporter.ProjectDone(summary)

	for _, f := range files {
		claimedFiles[f] = true
	}
	return nil
}

// buildResolver constructs the per-project Moniker Resolver (spec §4.6
// "constructs a per-project Export Moniker resolver if a manifest is
// bound"). The export manifest and its directory are discovered by
// walking upward from one of the project's own files — the same walk
// the Import resolver performs for a referenced file, so a project
// always recognizes its own manifest consistently.
func (d *Driver) buildResolver(project string, files []string) *moniker.Resolver {
	var exportDir string
	var exportManifest *ports.PackageManifest

	if manifest, ok := d.manifest.WorkspaceManifest(project); ok {
		exportManifest = &manifest
		for _, f := range files {
			if dir, _, ok := d.manifest.FindManifest(f); ok {
				exportDir = dir
				break
			}
		}
	}

	return moniker.New(d.cfg, d.manifest, exportDir, exportManifest)
}
