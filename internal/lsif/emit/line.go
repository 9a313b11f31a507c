// # internal/lsif/emit/line.go
package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"lsifgo/internal/lsif/model"
)

// lineEmitter writes one JSON value per line, the format most LSIF
// consumers expect (`.lsif` files are newline-delimited).
type lineEmitter struct {
	w   io.Writer
	enc *json.Encoder
}

func newLineEmitter(w io.Writer) *lineEmitter {
	return &lineEmitter{w: w, enc: json.NewEncoder(w)}
}

func (e *lineEmitter) Start() error { return nil }
func (e *lineEmitter) End() error   { return nil }

func (e *lineEmitter) Emit(el model.Element) error {
	if err := e.enc.Encode(el); err != nil {
		return fmt.Errorf("emit line element %s: %w", el.ElementID(), err)
	}
	return nil
}
