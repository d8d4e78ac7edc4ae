// Package runid generates monotonic, sortable identifiers for training
// runs and per-epoch checkpoints, the same way the host codebase's
// cards.Builder stamps each result card with a ulid.
package runid

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// Generator produces monotonically increasing ULIDs from a single
// entropy source. It is not safe for concurrent use — callers that need
// one ID per epoch from a single-threaded driver are the intended usage,
// not concurrent workers.
type Generator struct {
	entropy *ulid.MonotonicEntropy
}

// New constructs a Generator.
func New() *Generator {
	return &Generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// RunID returns a new ULID string identifying a training run.
func (g *Generator) RunID() string {
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}

// CheckpointID returns a new ULID string identifying a single epoch's
// checkpoint within a run.
func (g *Generator) CheckpointID() string {
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
