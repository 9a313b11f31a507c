// # internal/lsif/ids/ids.go
// Package ids is the sole source of vertex/edge identities. It holds no
// other state and has no knowledge of the graph it numbers.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"lsifgo/internal/lsif/model"
)

// Policy selects how IDs are generated.
type Policy string

const (
	PolicyNumber Policy = "number"
	PolicyUUID   Policy = "uuid"
)

// Generator hands out identities in call order. Sequential generators are
// safe for the single-threaded core; UUID generators are unconditionally
// concurrency-safe should a caller ever need that.
type Generator struct {
	policy  Policy
	counter uint64
}

// NewGenerator constructs a Generator for the given policy. An unrecognized
// policy defaults to sequential numbering.
func NewGenerator(policy Policy) *Generator {
	return &Generator{policy: policy}
}

// Next returns the next identity.
func (g *Generator) Next() model.ID {
	if g.policy == PolicyUUID {
		return model.ID(uuid.New().String())
	}
	n := atomic.AddUint64(&g.counter, 1)
	return model.ID(strconv.FormatUint(n, 10))
}
