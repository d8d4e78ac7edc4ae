// Package weights holds the two dense V×D weight matrices (WI, the
// input/embedding rows; WO, the output/context rows) that every training
// worker reads and writes concurrently without locks. This is the one
// place in lexvec that deliberately departs from the host codebase's
// usual sync.RWMutex-guarded store pattern (see pkg/korel/store/memstore
// in the teacher this project is grounded on): the Hogwild-style SGD the
// trainer performs requires unsynchronized access to be correct in the
// way the algorithm intends, not despite a missing lock.
package weights

import "math/rand"

// Matrices is a pair of row-major V×D float32 matrices.
type Matrices struct {
	WI []float32
	WO []float32
	V  int
	D  int
}

// New allocates and initializes WI and WO for a vocabulary of size v and
// embedding dimension d. WI is filled with uniform values in
// (-0.5/D, +0.5/D); WO is left zeroed. Pass a seeded *rand.Rand for
// reproducible initialization in tests; nil uses a fresh source seeded
// with 1.
func New(v, d int, rnd *rand.Rand) *Matrices {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	m := &Matrices{
		WI: make([]float32, v*d),
		WO: make([]float32, v*d),
		V:  v,
		D:  d,
	}
	scale := 1.0 / float64(d)
	for i := range m.WI {
		m.WI[i] = float32((rnd.Float64() - 0.5) * scale)
	}
	return m
}

// RowI returns the input row for vocabulary index i as a slice sharing
// storage with the backing matrix — writes through the slice mutate m.
func (m *Matrices) RowI(i int32) []float32 {
	off := int(i) * m.D
	return m.WI[off : off+m.D]
}

// RowO returns the output/context row for vocabulary index i.
func (m *Matrices) RowO(i int32) []float32 {
	off := int(i) * m.D
	return m.WO[off : off+m.D]
}
