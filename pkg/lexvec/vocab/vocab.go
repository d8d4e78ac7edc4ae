// Package vocab builds the hash-addressed, count-sorted symbol table that
// anchors every other lexvec component: each surviving corpus word gets a
// dense index, a frequency-derived subsample threshold, and two adjacency
// lists (strong pairs, weak pairs) keyed by that same index space.
//
// The shape follows how the host codebase's analytics.Analyzer interns
// tokens to int32 ids before counting co-occurrence — this package does
// the same interning, but backs it with an explicit open-addressed hash
// table (see hashtable.go) instead of a Go map, because spec-mandated
// behavior (stable re-insertion after sort-and-reduce, a hot-path find
// reused by both ingestion and training) depends on owning the probe
// sequence.
package vocab

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	"github.com/cognicore/lexvec/pkg/lexvec/internalerr"
)

const (
	// MaxTokenLen is the maximum token length in bytes; longer tokens are
	// truncated on read, matching dict2vec's MAXLEN.
	MaxTokenLen = 100

	// DefaultHashSize is the hash table size used unless a build override
	// is supplied. It is intentionally much larger than any realistic
	// vocabulary to keep probe chains short.
	DefaultHashSize = 30_000_000

	// minHashSize is the smallest table size Build accepts; smaller
	// requested sizes are raised to it. The probe loop spins forever once
	// every slot is occupied, and this floor does not prevent that for a
	// vocabulary larger than the table.
	minHashSize = 1024
)

// Entry is one surviving vocabulary word plus its adjacency lists and
// draw cursors. Per §5 of the spec this struct is built once and treated
// as read-only during training except for PosStrong/PosWeak, which every
// worker mutates without synchronization — races there only cause a
// cursor to skip or repeat a draw, which the design explicitly tolerates.
type Entry struct {
	Word     string
	Count    int64
	PDiscard float64

	StrongPairs []int32
	WeakPairs   []int32

	PosStrong int
	PosWeak   int
}

// PairKind selects which adjacency relation ingestion appends to.
type PairKind int

const (
	Strong PairKind = iota
	Weak
)

// Vocabulary is the built, read-only (apart from pair cursors) symbol
// table. TrainWords is the total in-vocabulary token count after
// sort-and-reduce — the T in the subsample formula and the per-epoch
// word budget the trainer stops at.
type Vocabulary struct {
	Entries    []Entry
	TrainWords int64

	ht     *hashtable
	sample float64
}

// BuildOptions configures vocabulary construction.
type BuildOptions struct {
	MinCount int     // words with Count < MinCount are dropped
	Sample   float64 // subsample threshold t; <= 0 disables subsampling
	HashSize int      // 0 uses DefaultHashSize
}

// Build scans a whitespace-tokenized corpus file once, then sorts and
// reduces the resulting symbol table. It is the only entry point that
// creates a Vocabulary from raw text.
func Build(ctx context.Context, corpusPath string, opts BuildOptions) (*Vocabulary, error) {
	hashSize := opts.HashSize
	if hashSize <= 0 {
		hashSize = DefaultHashSize
	}
	if hashSize < minHashSize {
		hashSize = minHashSize
	}

	f, err := os.Open(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrCorpusUnreadable, corpusPath, err)
	}
	defer f.Close()

	v := &Vocabulary{ht: newHashtable(hashSize)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	var trainWords int64
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		word := scanner.Text()
		if len(word) > MaxTokenLen {
			word = word[:MaxTokenLen]
		}
		if word == "" {
			continue
		}
		v.addOccurrence(word)
		trainWords++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrCorpusUnreadable, corpusPath, err)
	}

	v.TrainWords = trainWords

	if err := v.sortAndReduce(opts.MinCount); err != nil {
		return nil, err
	}

	v.computeDiscardProbs(opts.Sample)

	return v, nil
}

// Restore reconstructs a Vocabulary from previously built entries and a
// train-word total — used by vocabstore to rehydrate a cached vocabulary
// without re-scanning the corpus. The hash table is rebuilt from the
// supplied entries so Lookup behaves identically to a freshly Built
// vocabulary; PDiscard is taken as already computed, so
// SubsamplingEnabled reflects whether any entry carries a nonzero value.
func Restore(entries []Entry, trainWords int64) *Vocabulary {
	v := &Vocabulary{
		Entries:    entries,
		TrainWords: trainWords,
		ht:         newHashtable(DefaultHashSize),
	}
	for idx := range v.Entries {
		slot, _ := v.ht.probe(v.Entries[idx].Word, v.wordAt)
		v.ht.slots[slot] = int32(idx)
		if v.Entries[idx].PDiscard > 0 {
			v.sample = 1
		}
	}
	return v
}

// addOccurrence increments word's count, creating a fresh entry at the
// first empty probe slot when the word hasn't been seen before.
func (v *Vocabulary) addOccurrence(word string) {
	slot, occupied := v.ht.probe(word, v.wordAt)
	if occupied {
		v.Entries[v.ht.slots[slot]].Count++
		return
	}
	idx := int32(len(v.Entries))
	v.Entries = append(v.Entries, Entry{Word: word, Count: 1})
	v.ht.slots[slot] = idx
}

func (v *Vocabulary) wordAt(idx int32) string {
	return v.Entries[idx].Word
}

// sortAndReduce sorts entries by count descending, drops everything below
// minCount, subtracts the dropped tail from TrainWords, and rebuilds the
// hash table against the new, dense index space.
func (v *Vocabulary) sortAndReduce(minCount int) error {
	sort.SliceStable(v.Entries, func(i, j int) bool {
		return v.Entries[i].Count > v.Entries[j].Count
	})

	cut := len(v.Entries)
	for cut > 0 && v.Entries[cut-1].Count < int64(minCount) {
		cut--
	}

	var droppedCount int64
	for i := cut; i < len(v.Entries); i++ {
		droppedCount += v.Entries[i].Count
	}
	v.TrainWords -= droppedCount
	v.Entries = v.Entries[:cut]

	if len(v.Entries) == 0 {
		return internalerr.ErrEmptyVocabulary
	}

	v.ht.reset()
	for idx := range v.Entries {
		slot, _ := v.ht.probe(v.Entries[idx].Word, v.wordAt)
		v.ht.slots[slot] = int32(idx)
	}
	return nil
}

// computeDiscardProbs fills PDiscard on every entry per §4.3. sample <= 0
// disables subsampling (every entry keeps PDiscard == 0, and the
// trainer's "keep iff PDiscard >= r" test would then drop almost every
// token, because r is drawn from [0,1) and 0 >= r only when r == 0 — so
// callers must check sample <= 0 directly rather than relying on this
// value; see Vocabulary.SubsamplingEnabled).
func (v *Vocabulary) computeDiscardProbs(sample float64) {
	v.sample = sample
	if sample <= 0 {
		return
	}
	t := sample * float64(v.TrainWords)
	for i := range v.Entries {
		v.Entries[i].PDiscard = math.Sqrt(t) / math.Sqrt(float64(v.Entries[i].Count))
	}
}

// SubsamplingEnabled reports whether Build was configured with a positive
// sample threshold. When false, the trainer must keep every token.
func (v *Vocabulary) SubsamplingEnabled() bool {
	return v.sample > 0
}

// Size returns the number of surviving vocabulary words.
func (v *Vocabulary) Size() int {
	return len(v.Entries)
}

// Lookup resolves a token to its vocabulary index.
func (v *Vocabulary) Lookup(word string) (int32, bool) {
	slot, occupied := v.ht.probe(word, v.wordAt)
	if !occupied {
		return 0, false
	}
	return v.ht.slots[slot], true
}

// NextPair advances i's cursor for the given relation and returns the
// paired vocabulary index. ok is false if the relation is empty for i.
// Multiple workers may call this concurrently for the same i: the
// cursor read-increment-wrap is intentionally unsynchronized (Hogwild
// tolerance, §5), so concurrent callers may observe the same cursor
// value or skip one — both are acceptable per the design notes.
func (v *Vocabulary) NextPair(i int32, kind PairKind) (int32, bool) {
	e := &v.Entries[i]
	var list *[]int32
	var pos *int
	if kind == Strong {
		list, pos = &e.StrongPairs, &e.PosStrong
	} else {
		list, pos = &e.WeakPairs, &e.PosWeak
	}
	if len(*list) == 0 {
		return 0, false
	}
	p := *pos
	if p < 0 || p >= len(*list) {
		p = 0
	}
	target := (*list)[p]
	*pos = (p + 1) % len(*list)
	return target, true
}

// HasPair reports whether target appears in i's strong or weak adjacency
// list, via a linear scan — used by negative-sample discarding (§4.7
// Pass A) so a draw never contradicts a known positive relation.
func (v *Vocabulary) HasPair(i, target int32) bool {
	e := &v.Entries[i]
	for _, t := range e.StrongPairs {
		if t == target {
			return true
		}
	}
	for _, t := range e.WeakPairs {
		if t == target {
			return true
		}
	}
	return false
}

// IngestPairs reads a whitespace-separated stream of token pairs from
// path and appends adjacency entries for both relation directions. A
// missing file is degraded, not fatal: it is warned via log and the
// relation is treated as empty. Pairs whose tokens aren't both in the
// vocabulary are silently dropped, and duplicate pairs are preserved —
// the designed behavior that amplifies draw probability (§4.4).
func (v *Vocabulary) IngestPairs(kind PairKind, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("lexvec: warning: pair file %q unavailable, treating relation as empty: %v", path, err)
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	var pending string
	havePending := false
	for scanner.Scan() {
		tok := scanner.Text()
		if !havePending {
			pending = tok
			havePending = true
			continue
		}
		v.ingestPair(kind, pending, tok)
		havePending = false
	}
	return scanner.Err()
}

func (v *Vocabulary) ingestPair(kind PairKind, a, b string) {
	if a == b {
		return
	}
	ia, ok := v.Lookup(a)
	if !ok {
		return
	}
	ib, ok := v.Lookup(b)
	if !ok {
		return
	}
	ea := &v.Entries[ia]
	eb := &v.Entries[ib]
	if kind == Strong {
		ea.StrongPairs = append(ea.StrongPairs, ib)
		eb.StrongPairs = append(eb.StrongPairs, ia)
	} else {
		ea.WeakPairs = append(ea.WeakPairs, ib)
		eb.WeakPairs = append(eb.WeakPairs, ia)
	}
}
