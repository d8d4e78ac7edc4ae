// Package trainer is the parallel Hogwild SGD core: it partitions the
// corpus file into K independent byte ranges, one per worker goroutine,
// and has each worker perform SGNS updates plus strong-pair and
// weak-pair positive updates against two shared weight matrices,
// coordinated only through a handful of unsynchronized or atomic shared
// values (§5 of the spec this package implements).
//
// The worker fan-out shape — fixed goroutine count, sync.WaitGroup,
// per-worker local accumulators merged at the end — mirrors
// analytics.Analyzer.ProcessBatch in the host codebase this project is
// grounded on; the difference is that ProcessBatch merges local counts
// after a barrier, while here the shared state (weight matrices,
// progress counter, cursors) is touched directly and concurrently by
// design, because the whole point of Hogwild SGD is that those races
// are cheaper than the locks that would remove them.
package trainer

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cognicore/lexvec/pkg/lexvec/sampler"
	"github.com/cognicore/lexvec/pkg/lexvec/sigmoid"
	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
	"github.com/cognicore/lexvec/pkg/lexvec/weights"
)

// MaxLine is the maximum number of surviving tokens held in a worker's
// line buffer at once.
const MaxLine = 1000

// flushThreshold is the local-word-count value above which a worker
// flushes its progress into the shared counter and decays alpha.
const flushThreshold = 20000

// Trainer owns the shared, read-mostly state (vocabulary, negative
// table, sigmoid table) and the shared mutable state (weight matrices,
// progress counter, negative-draw cursor, learning rate) that every
// worker goroutine reads and writes during RunEpoch.
type Trainer struct {
	cfg        Config
	vocab      *vocab.Vocabulary
	neg        *sampler.NegativeTable
	w          *weights.Matrices
	sig        *sigmoid.Table
	corpusPath string
	reporter   Reporter

	wordCountActual atomic.Int64
	negPos          atomic.Uint64
	alpha           *atomicFloat64

	negsampTotal     atomic.Int64
	negsampDiscarded atomic.Int64
}

// New constructs a Trainer. neg may be nil when cfg.Negative == 0 (§4.5:
// negative table build is skipped entirely in that case).
func New(cfg Config, v *vocab.Vocabulary, neg *sampler.NegativeTable, w *weights.Matrices, corpusPath string, reporter Reporter) *Trainer {
	return &Trainer{
		cfg:        cfg,
		vocab:      v,
		neg:        neg,
		w:          w,
		sig:        sigmoid.New(),
		corpusPath: corpusPath,
		reporter:   reporter,
		alpha:      newAtomicFloat64(cfg.Alpha),
	}
}

// RunEpoch launches cfg.Threads worker goroutines against epochIndex's
// word budget and waits for all of them to finish, per §4.7/§4.8: cursors
// and the negative-draw position are never reset between epochs, only
// the workers themselves are re-spawned.
func (tr *Trainer) RunEpoch(epochIndex int) error {
	if tr.cfg.Threads <= 0 {
		return fmt.Errorf("trainer: threads must be positive, got %d", tr.cfg.Threads)
	}
	var wg sync.WaitGroup
	for r := 0; r < tr.cfg.Threads; r++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			tr.runWorker(workerID, epochIndex)
		}(r)
	}
	wg.Wait()
	return nil
}

// Run drives cfg.Epochs successive calls to RunEpoch. onEpochDone, if
// non-nil, is invoked with the completed epoch's index after every
// epoch — callers implementing save-each-epoch call the embedding
// writer unconditionally there; callers that only want a final save
// check epoch == cfg.Epochs-1 themselves.
func (tr *Trainer) Run(onEpochDone func(epoch int) error) error {
	for e := 0; e < tr.cfg.Epochs; e++ {
		if err := tr.RunEpoch(e); err != nil {
			return err
		}
		if onEpochDone != nil {
			if err := onEpochDone(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// WordCountActual returns the current cumulative processed-word count.
func (tr *Trainer) WordCountActual() int64 { return tr.wordCountActual.Load() }

// Alpha returns the current shared learning rate.
func (tr *Trainer) Alpha() float64 { return tr.alpha.Load() }

// NegSampStats returns the cumulative count of negative draws actually
// applied versus discarded for colliding with a known pair relation
// (§4.7 Pass A). Diagnostic only.
func (tr *Trainer) NegSampStats() (total, discarded int64) {
	return tr.negsampTotal.Load(), tr.negsampDiscarded.Load()
}
