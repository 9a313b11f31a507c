// # internal/lsif/ids/builder.go
package ids

import "lsifgo/internal/lsif/model"

// Builder is the stateless factory producing uniquely-identified graph
// elements. Given an ID and payload it returns a value with no side
// effects; the only state it owns is the Generator it was built with.
type Builder struct {
	gen        *Generator
	noContents bool
}

// NewBuilder constructs a Builder. When noContents is true, Document
// vertices omit their Contents field regardless of what content the
// caller supplies — the caller still has to pass it in so hover/text
// extraction elsewhere isn't affected.
func NewBuilder(gen *Generator, noContents bool) *Builder {
	return &Builder{gen: gen, noContents: noContents}
}

func (b *Builder) MetaData(version, projectRoot string) model.MetaData {
	return model.NewMetaData(b.gen.Next(), version, projectRoot)
}

func (b *Builder) Source(kind, url, commit, branch string) model.Source {
	return model.NewSource(b.gen.Next(), kind, url, commit, branch)
}

func (b *Builder) Capabilities() model.Capabilities {
	return model.NewCapabilities(b.gen.Next())
}

func (b *Builder) Project(name, kind string) model.Project {
	return model.NewProject(b.gen.Next(), name, kind)
}

func (b *Builder) Document(uri, language, contents string) model.Document {
	if b.noContents {
		contents = ""
	}
	return model.NewDocument(b.gen.Next(), uri, language, contents)
}

func (b *Builder) Range(span model.Span, tag string) model.Range {
	return model.NewRange(b.gen.Next(), span, tag)
}

func (b *Builder) ResultSet() model.ResultSet {
	return model.NewResultSet(b.gen.Next())
}

func (b *Builder) Moniker(scheme, identifier string, kind model.MonikerKind) model.Moniker {
	return model.NewMoniker(b.gen.Next(), scheme, identifier, kind)
}

func (b *Builder) PackageInformation(name, manager, version, repository string) model.PackageInformation {
	return model.NewPackageInformation(b.gen.Next(), name, manager, version, repository)
}

func (b *Builder) DefinitionResult() model.ResultVertex     { return model.NewDefinitionResult(b.gen.Next()) }
func (b *Builder) ReferenceResult() model.ResultVertex      { return model.NewReferenceResult(b.gen.Next()) }
func (b *Builder) TypeDefinitionResult() model.ResultVertex { return model.NewTypeDefinitionResult(b.gen.Next()) }

func (b *Builder) HoverResult(contents string) model.HoverResult {
	return model.NewHoverResult(b.gen.Next(), contents)
}

func (b *Builder) Contains(outV model.ID, inVs []model.ID) model.Contains {
	return model.NewContains(b.gen.Next(), outV, inVs)
}

func (b *Builder) Next(outV, inV model.ID) model.Next {
	return model.NewNext(b.gen.Next(), outV, inV)
}

func (b *Builder) Item(outV model.ID, inVs []model.ID, document model.ID, property model.ItemProperty) model.Item {
	return model.NewItem(b.gen.Next(), outV, inVs, document, property)
}

func (b *Builder) MonikerEdge(outV, inV model.ID) model.MonikerEdge {
	return model.NewMonikerEdge(b.gen.Next(), outV, inV)
}

func (b *Builder) PackageInformationEdge(outV, inV model.ID) model.PackageInformationEdge {
	return model.NewPackageInformationEdge(b.gen.Next(), outV, inV)
}

func (b *Builder) DefinitionEdge(outV, inV model.ID) model.ResultEdge { return model.NewDefinitionEdge(b.gen.Next(), outV, inV) }
func (b *Builder) ReferencesEdge(outV, inV model.ID) model.ResultEdge {
	return model.NewReferencesEdge(b.gen.Next(), outV, inV)
}
func (b *Builder) TypeDefinitionEdge(outV, inV model.ID) model.ResultEdge {
	return model.NewTypeDefinitionEdge(b.gen.Next(), outV, inV)
}
func (b *Builder) HoverEdge(outV, inV model.ID) model.ResultEdge { return model.NewHoverEdge(b.gen.Next(), outV, inV) }
