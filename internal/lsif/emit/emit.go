// # internal/lsif/emit/emit.go
// Package emit is the framed, append-only writer over a byte sink. It
// guarantees every element is serialized exactly once, in call order, and
// never rewrites or retracts a previously emitted element.
package emit

import (
	"io"

	"lsifgo/internal/lsif/model"
)

// Format selects the on-disk framing. The core is oblivious to which one
// is chosen — all four wrap the same element stream.
type Format string

const (
	FormatJSON     Format = "json"
	FormatLine     Format = "line"
	FormatVis      Format = "vis"
	FormatGraphSON Format = "graphson"
)

// Emitter is the contract every format implements: emit appends to the
// sink in call order, start/end bracket the stream.
type Emitter interface {
	Start() error
	Emit(model.Element) error
	End() error
}

// New constructs the Emitter for the given format writing to w. An
// unrecognized format falls back to line-delimited JSON, the safest
// default for a downstream single-pass consumer.
func New(format Format, w io.Writer) Emitter {
	switch format {
	case FormatJSON:
		return newJSONArrayEmitter(w)
	case FormatVis:
		return newVisEmitter(w)
	case FormatGraphSON:
		return newGraphSONEmitter(w)
	default:
		return newLineEmitter(w)
	}
}
