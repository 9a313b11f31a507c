// # internal/lsif/emit/json_array.go
package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"lsifgo/internal/lsif/model"
)

// jsonArrayEmitter wraps the same element stream in a single top-level
// JSON array, for consumers that load the whole dump into one value.
type jsonArrayEmitter struct {
	w       io.Writer
	started bool
	count   int
}

func newJSONArrayEmitter(w io.Writer) *jsonArrayEmitter {
	return &jsonArrayEmitter{w: w}
}

func (e *jsonArrayEmitter) Start() error {
	_, err := io.WriteString(e.w, "[\n")
	e.started = true
	return err
}

func (e *jsonArrayEmitter) Emit(el model.Element) error {
	if !e.started {
		if err := e.Start(); err != nil {
			return err
		}
	}
	if e.count > 0 {
		if _, err := io.WriteString(e.w, ",\n"); err != nil {
			return err
		}
	}
	data, err := json.Marshal(el)
	if err != nil {
		return fmt.Errorf("marshal element %s: %w", el.ElementID(), err)
	}
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write element %s: %w", el.ElementID(), err)
	}
	e.count++
	return nil
}

func (e *jsonArrayEmitter) End() error {
	_, err := io.WriteString(e.w, "\n]\n")
	return err
}
