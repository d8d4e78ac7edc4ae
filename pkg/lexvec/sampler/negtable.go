// Package sampler builds the pre-expanded, pre-shuffled negative-sampling
// table: the unigram^0.75 noise distribution, flattened into an array a
// training worker can walk with a plain incrementing cursor instead of
// drawing a fresh random variate per negative sample.
package sampler

import (
	"math"
	"math/rand"

	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
)

// DefaultSize is the negative-sample table size used unless overridden.
// It is intentionally large so that even the least frequent surviving
// word gets at least one cell.
const DefaultSize = 100_000_000

// NegativeTable is the shuffled array of vocabulary indices described in
// §3. It is built once and is read-only afterward; concurrent readers
// never mutate it, only the externally-held draw cursor advances.
type NegativeTable struct {
	indices []int32
}

// Build populates a negative-sample table sized size from vocab's word
// counts raised to the 0.75 power, then shuffles it uniformly using rnd
// (pass a seeded *rand.Rand for reproducible tests; nil uses a fresh
// source seeded with 1). A size <= 0 means negative sampling is disabled; Build
// returns nil in that case and callers must not dereference it.
func Build(v *vocab.Vocabulary, size int, rnd *rand.Rand) *NegativeTable {
	if size <= 0 {
		return nil
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}

	var total float64
	pow := make([]float64, v.Size())
	for i, e := range v.Entries {
		p := math.Pow(float64(e.Count), 0.75)
		pow[i] = p
		total += p
	}

	t := &NegativeTable{indices: make([]int32, 0, size)}
	if total <= 0 {
		return t
	}

	for i := range v.Entries {
		if len(t.indices) >= size {
			break
		}
		cells := int(math.Ceil(pow[i]*float64(size)/total)) + 1
		for c := 0; c < cells && len(t.indices) < size; c++ {
			t.indices = append(t.indices, int32(i))
		}
	}

	rnd.Shuffle(len(t.indices), func(i, j int) {
		t.indices[i], t.indices[j] = t.indices[j], t.indices[i]
	})

	return t
}

// Len returns the number of cells actually populated (<= the requested
// size, since allocation is truncated at the array end).
func (t *NegativeTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.indices)
}

// At returns the vocabulary index stored at pos, wrapping modulo Len().
// Callers (the trainer's shared neg_pos cursor) are expected to advance
// pos themselves with a plain increment; At performs no state mutation.
func (t *NegativeTable) At(pos uint64) int32 {
	n := uint64(len(t.indices))
	return t.indices[pos%n]
}

// CellCounts returns, for each vocabulary index, the number of negative
// table cells it occupies. Exposed for testing the §8 invariant that the
// count is within 1 of ceil(count[i]^0.75 * N / sum).
func (t *NegativeTable) CellCounts(vocabSize int) []int {
	counts := make([]int, vocabSize)
	for _, idx := range t.indices {
		counts[idx]++
	}
	return counts
}
