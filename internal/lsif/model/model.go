// # internal/lsif/model/model.go
// Package model defines the closed set of LSIF vertex and edge variants the
// core emits. Every type here is a plain, tagged value — no methods touch
// the Emitter or the sink. Label discriminates the payload the way the
// LSIF wire format itself does.
package model

// ID is the wire identity of a vertex or edge. Depending on the configured
// ID policy it holds either a decimal integer string or a UUIDv4 string;
// callers never parse it, only compare and embed it.
type ID string

// Label discriminates vertex and edge payloads.
type Label string

const (
	LabelMetaData           Label = "metaData"
	LabelSource              Label = "source"
	LabelCapabilities        Label = "capabilities"
	LabelProject             Label = "project"
	LabelDocument            Label = "document"
	LabelRange               Label = "range"
	LabelResultSet           Label = "resultSet"
	LabelMoniker             Label = "moniker"
	LabelPackageInformation  Label = "packageInformation"
	LabelDefinitionResult    Label = "definitionResult"
	LabelReferenceResult     Label = "referenceResult"
	LabelTypeDefinitionResult Label = "typeDefinitionResult"
	LabelHoverResult         Label = "hoverResult"

	LabelContains           Label = "contains"
	LabelNext               Label = "next"
	LabelItem               Label = "item"
	LabelMonikerEdge        Label = "moniker"
	LabelPackageInfoEdge    Label = "packageInformation"
	LabelTextDocDefinition  Label = "textDocument/definition"
	LabelTextDocReferences  Label = "textDocument/references"
	LabelTextDocTypeDef     Label = "textDocument/typeDefinition"
	LabelTextDocHover       Label = "textDocument/hover"
)

// Type distinguishes a vertex from an edge, matching the wire `type` key.
type Type string

const (
	TypeVertex Type = "vertex"
	TypeEdge   Type = "edge"
)

// Element is the common envelope every emitted value satisfies.
type Element interface {
	ElementID() ID
	ElementType() Type
	ElementLabel() Label
}

type base struct {
	ID    ID    `json:"id"`
	Type  Type  `json:"type"`
	Label Label `json:"label"`
}

func (b base) ElementID() ID       { return b.ID }
func (b base) ElementType() Type   { return b.Type }
func (b base) ElementLabel() Label { return b.Label }

// Position is a zero-based line/character location, mirroring the LSP
// convention the dump format inherits.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Span is a half-open [Start, End) character range inside one document.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MetaData is the mandatory first element of every dump.
type MetaData struct {
	base
	Version           string `json:"version"`
	ProjectRoot       string `json:"projectRoot"`
	PositionEncoding  string `json:"positionEncoding"`
}

func NewMetaData(id ID, version, projectRoot string) MetaData {
	return MetaData{base: base{ID: id, Type: TypeVertex, Label: LabelMetaData}, Version: version, ProjectRoot: projectRoot, PositionEncoding: "utf-16"}
}

// Source carries workspace-wide source-control info; the mandatory second
// element.
type Source struct {
	base
	Kind   string `json:"kind"`
	URL    string `json:"url,omitempty"`
	Commit string `json:"revision,omitempty"`
	Branch string `json:"branch,omitempty"`
}

func NewSource(id ID, kind, url, commit, branch string) Source {
	return Source{base: base{ID: id, Type: TypeVertex, Label: LabelSource}, Kind: kind, URL: url, Commit: commit, Branch: branch}
}

// Capabilities advertises which result kinds the dump provides; emitted
// once, before any Project. ImplementationProvider is always false: no
// occurrence kind the core tracks maps to an Implementation result, so
// advertising true would promise textDocument/implementation requests
// this tool can never satisfy.
type Capabilities struct {
	base
	DeclarationProvider    bool `json:"declarationProvider"`
	DefinitionProvider     bool `json:"definitionProvider"`
	ReferencesProvider     bool `json:"referencesProvider"`
	TypeDefinitionProvider bool `json:"typeDefinitionProvider"`
	ImplementationProvider bool `json:"implementationProvider"`
	HoverProvider          bool `json:"hoverProvider"`
}

func NewCapabilities(id ID) Capabilities {
	return Capabilities{
		base:                   base{ID: id, Type: TypeVertex, Label: LabelCapabilities},
		DeclarationProvider:    false,
		DefinitionProvider:     true,
		ReferencesProvider:     true,
		TypeDefinitionProvider: true,
		ImplementationProvider: false,
		HoverProvider:          true,
	}
}

// Project is one compilation unit.
type Project struct {
	base
	Name string `json:"name"`
	Kind string `json:"kind"` // language/ecosystem identifier
}

func NewProject(id ID, name, kind string) Project {
	return Project{base: base{ID: id, Type: TypeVertex, Label: LabelProject}, Name: name, Kind: kind}
}

// Document is one source file, emitted once per unique URI per dump.
type Document struct {
	base
	URI      string `json:"uri"`
	Language string `json:"languageId"`
	Contents string `json:"contents,omitempty"`
}

func NewDocument(id ID, uri, language, contents string) Document {
	return Document{base: base{ID: id, Type: TypeVertex, Label: LabelDocument}, URI: uri, Language: language, Contents: contents}
}

// Range is a character span occurrence of a symbol inside one document.
type Range struct {
	base
	Span
	Tag string `json:"tag,omitempty"` // declaration, definition, reference, typeReference
}

func NewRange(id ID, span Span, tag string) Range {
	return Range{base: base{ID: id, Type: TypeVertex, Label: LabelRange}, Span: span, Tag: tag}
}

// ResultSet aggregates all navigational results for one symbol identity.
type ResultSet struct {
	base
}

func NewResultSet(id ID) ResultSet {
	return ResultSet{base: base{ID: id, Type: TypeVertex, Label: LabelResultSet}}
}

// MonikerKind classifies a moniker's cross-project visibility.
type MonikerKind string

const (
	MonikerImport MonikerKind = "import"
	MonikerExport MonikerKind = "export"
	MonikerLocal  MonikerKind = "local"
)

// Moniker is a stable cross-project identity record.
type Moniker struct {
	base
	Scheme     string      `json:"scheme"`
	Identifier string      `json:"identifier"`
	Kind       MonikerKind `json:"kind"`
}

func NewMoniker(id ID, scheme, identifier string, kind MonikerKind) Moniker {
	return Moniker{base: base{ID: id, Type: TypeVertex, Label: LabelMoniker}, Scheme: scheme, Identifier: identifier, Kind: kind}
}

// PackageInformation is the package an exported/imported moniker belongs to.
type PackageInformation struct {
	base
	Name       string `json:"name"`
	Manager    string `json:"manager"`
	Version    string `json:"version"`
	Repository string `json:"repository,omitempty"`
}

func NewPackageInformation(id ID, name, manager, version, repository string) PackageInformation {
	return PackageInformation{base: base{ID: id, Type: TypeVertex, Label: LabelPackageInformation}, Name: name, Manager: manager, Version: version, Repository: repository}
}

// ResultVertex is the common shape of the three navigational aggregators;
// the core never inlines occurrences into it, those arrive via Item edges.
type ResultVertex struct {
	base
}

func NewDefinitionResult(id ID) ResultVertex { return ResultVertex{base{id, TypeVertex, LabelDefinitionResult}} }
func NewReferenceResult(id ID) ResultVertex  { return ResultVertex{base{id, TypeVertex, LabelReferenceResult}} }
func NewTypeDefinitionResult(id ID) ResultVertex {
	return ResultVertex{base{id, TypeVertex, LabelTypeDefinitionResult}}
}

// HoverResult carries rendered hover content; the one result vertex with a
// payload of its own.
type HoverResult struct {
	base
	Contents string `json:"contents"`
}

func NewHoverResult(id ID, contents string) HoverResult {
	return HoverResult{base: base{ID: id, Type: TypeVertex, Label: LabelHoverResult}, Contents: contents}
}

// --- Edges ---

type edgeBase struct {
	base
	OutV ID   `json:"outV"`
	InVs []ID `json:"inVs,omitempty"`
	InV  ID   `json:"inV,omitempty"`
}

// Contains links a Project to its Documents, or a Document to its Ranges.
type Contains struct {
	edgeBase
}

func NewContains(id, outV ID, inVs []ID) Contains {
	return Contains{edgeBase{base{id, TypeEdge, LabelContains}, outV, inVs, ""}}
}

// Next links a Range to a ResultSet, or a ResultSet to another ResultSet
// (an alias).
type Next struct {
	edgeBase
}

func NewNext(id, outV, inV ID) Next {
	return Next{edgeBase{base{id, TypeEdge, LabelNext}, outV, nil, inV}}
}

// ItemProperty scopes an Item edge's ranges to a navigational subset.
type ItemProperty string

const (
	ItemDeclarations     ItemProperty = "declarations"
	ItemDefinitions      ItemProperty = "definitions"
	ItemReferences       ItemProperty = "references"
	ItemReferenceResults ItemProperty = "referenceResults"
)

// Item links a result vertex to the Ranges (or nested result vertices) that
// contribute to it, scoped to the Document that contains them.
type Item struct {
	edgeBase
	Document ID           `json:"document"`
	Property ItemProperty `json:"property,omitempty"`
}

func NewItem(id, outV ID, inVs []ID, document ID, property ItemProperty) Item {
	return Item{edgeBase: edgeBase{base{id, TypeEdge, LabelItem}, outV, inVs, ""}, Document: document, Property: property}
}

// MonikerEdge attaches a Moniker to the ResultSet it identifies.
type MonikerEdge struct {
	edgeBase
}

func NewMonikerEdge(id, outV, inV ID) MonikerEdge {
	return MonikerEdge{edgeBase{base{id, TypeEdge, LabelMonikerEdge}, outV, nil, inV}}
}

// PackageInformationEdge attaches a PackageInformation to a Moniker.
type PackageInformationEdge struct {
	edgeBase
}

func NewPackageInformationEdge(id, outV, inV ID) PackageInformationEdge {
	return PackageInformationEdge{edgeBase{base{id, TypeEdge, LabelPackageInfoEdge}, outV, nil, inV}}
}

// ResultEdge links a ResultSet to one of its result vertices (Definition,
// Reference, TypeDefinition, or Hover).
type ResultEdge struct {
	edgeBase
}

func newResultEdge(label Label, id, outV, inV ID) ResultEdge {
	return ResultEdge{edgeBase{base{id, TypeEdge, label}, outV, nil, inV}}
}

func NewDefinitionEdge(id, outV, inV ID) ResultEdge {
	return newResultEdge(LabelTextDocDefinition, id, outV, inV)
}
func NewReferencesEdge(id, outV, inV ID) ResultEdge {
	return newResultEdge(LabelTextDocReferences, id, outV, inV)
}
func NewTypeDefinitionEdge(id, outV, inV ID) ResultEdge {
	return newResultEdge(LabelTextDocTypeDef, id, outV, inV)
}
func NewHoverEdge(id, outV, inV ID) ResultEdge {
	return newResultEdge(LabelTextDocHover, id, outV, inV)
}
