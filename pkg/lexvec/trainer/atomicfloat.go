package trainer

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 is a lock-free float64 box for the shared learning rate.
// Every worker writes it on its periodic flush and reads it on every
// weight update; per §5 this needs no stronger guarantee than "eventually
// visible" — a stale read for one update is tolerable, so a plain atomic
// load/store of the bit pattern is enough; a mutex would be needless
// contention on the single hottest read in the training loop.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func newAtomicFloat64(v float64) *atomicFloat64 {
	a := &atomicFloat64{}
	a.Store(v)
	return a
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

func (a *atomicFloat64) Store(v float64) {
	a.bits.Store(math.Float64bits(v))
}
