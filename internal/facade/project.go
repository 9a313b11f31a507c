package facade

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Files returns project's source files, walking its root directory and
// skipping any subtree that belongs to a different configured project,
// grounded on the teacher's App.ScanDirectories (exclude-glob matching
// against path basenames) — adapted to also prune nested project roots
// so a monorepo workspace never double-owns a file.
func (c *Checker) Files(ctx context.Context, project string) ([]string, error) {
	if cached, ok := c.files[project]; ok {
		return cached, nil
	}

	root, ok := c.projectDirs[project]
	if !ok {
		return nil, fmt.Errorf("facade: unknown project %q", project)
	}

	dirGlobs, err := compileGlobs(c.cfg.Exclude.Dirs)
	if err != nil {
		return nil, fmt.Errorf("facade: invalid exclude dir pattern: %w", err)
	}
	fileGlobs, err := compileGlobs(c.cfg.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("facade: invalid exclude file pattern: %w", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		base := filepath.Base(path)
		if d.IsDir() {
			if path != root {
				for other, otherRoot := range c.projectDirs {
					if other != project && otherRoot == path {
						return filepath.SkipDir
					}
				}
			}
			for _, g := range dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if c.registry.LanguageForPath(filepath.Ext(path)) == "" {
			return nil
		}
		for _, g := range fileGlobs {
			if g.Match(base) {
				return nil
			}
		}
		if owner, owned := c.fileOwner[path]; owned && owner != project {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	for _, f := range files {
		c.fileOwner[f] = project
	}
	c.files[project] = files
	return files, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// ProjectReferences reports project as depending on any other
// configured project whose manifest Name or Repository matches one of
// project's own manifest Dependencies — the "declared references"
// relation the Pipeline Driver topologically sorts by.
func (c *Checker) ProjectReferences(ctx context.Context, project string) ([]string, error) {
	manifest, ok := c.manifests.WorkspaceManifest(project)
	if !ok {
		return nil, nil
	}

	var refs []string
	for other, dir := range c.projectDirs {
		if other == project {
			continue
		}
		otherManifest, ok := c.manifests.WorkspaceManifest(other)
		if !ok {
			continue
		}
		if _, declared := manifest.Dependencies[otherManifest.Name]; declared {
			refs = append(refs, other)
			continue
		}
		if otherManifest.Repository != "" {
			for dep := range manifest.Dependencies {
				if strings.Contains(otherManifest.Repository, dep) {
					refs = append(refs, other)
					break
				}
			}
		}
		_ = dir
	}

	sort.Strings(refs)
	return refs, nil
}

// Language reports the document language ID lsifgo uses for file.
func (c *Checker) Language(file string) string {
	return c.registry.LanguageForPath(filepath.Ext(file))
}

// Contents returns file's source text.
func (c *Checker) Contents(ctx context.Context, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
