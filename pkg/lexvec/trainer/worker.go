package trainer

import (
	"bufio"
	"io"
	"os"

	"github.com/cognicore/lexvec/pkg/lexvec/lcg"
	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
)

// runWorker implements §4.7 for a single worker: open an independent
// file handle on the corpus, seek to this worker's byte range, and
// repeatedly fill and train on line buffers until either the epoch's
// shared word budget is reached or this worker's file region is
// exhausted.
//
// Open question carried from spec.md §9: the source's outer loop
// condition is the shared progress counter, but each worker reads a
// fixed file region, so EOF and budget can each end a worker
// independently. This implementation stops a worker on whichever comes
// first — budget satisfied, or this worker's region exhausted — which
// is the "each worker stops at EOF, union of ranges covers the corpus"
// alternative the spec calls acceptable. The documented consequence
// applies: near end-of-corpus, coverage is unbalanced across workers,
// since a worker whose region happens to be sparse in survivable tokens
// finishes (and idles) before the others.
func (tr *Trainer) runWorker(workerID, epochIndex int) {
	budget := tr.vocab.TrainWords * int64(epochIndex+1)

	f, err := os.Open(tr.corpusPath)
	if err != nil {
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return
	}
	size := info.Size()
	if size > 0 && tr.cfg.Threads > 0 {
		offset := size * int64(workerID) / int64(tr.cfg.Threads)
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	rnd := lcg.New(uint32(workerID) + 1)
	H := tr.cfg.Window / 2

	var wcl int64
	var negTotalLocal, negDiscardedLocal int64
	line := make([]int32, 0, MaxLine)
	h := make([]float32, tr.cfg.Dim)

	for {
		if tr.wordCountActual.Load() >= budget {
			break
		}

		line = line[:0]
		eof := false
		for len(line) < MaxLine {
			if !scanner.Scan() {
				eof = true
				break
			}
			tok := scanner.Text()
			if len(tok) > vocab.MaxTokenLen {
				tok = tok[:vocab.MaxTokenLen]
			}
			if tok == "" {
				continue
			}
			idx, ok := tr.vocab.Lookup(tok)
			if !ok {
				continue
			}

			wcl++
			if wcl > flushThreshold {
				tr.flush(epochIndex, &wcl, false)
			}

			if tr.vocab.SubsamplingEnabled() {
				if tr.vocab.Entries[idx].PDiscard < rnd.Float64() {
					continue
				}
			}
			line = append(line, idx)
		}

		if len(line) > 0 {
			tr.trainLine(line, H, h, &negTotalLocal, &negDiscardedLocal)
		}
		if eof {
			break
		}
	}

	tr.flush(epochIndex, &wcl, true)
	tr.negsampTotal.Add(negTotalLocal)
	tr.negsampDiscarded.Add(negDiscardedLocal)
}

// trainLine performs the per-line training pass described in §4.7 step 3
// over the already-subsampled, already-resolved token indices in line.
// h is reused scratch space sized to cfg.Dim, owned by the calling
// worker — never shared across goroutines.
func (tr *Trainer) trainLine(line []int32, H int, h []float32, negTotal, negDiscarded *int64) {
	n := len(line)
	for p := H; p < n-H; p++ {
		wt := line[p]
		for c := p - H; c <= p+H; c++ {
			if c == p {
				continue
			}
			wc := line[c]
			for k := range h {
				h[k] = 0
			}

			rowI := tr.w.RowI(wc)
			alpha := float32(tr.alpha.Load())

			// Pass A: one positive draw plus cfg.Negative negative draws.
			tr.update(rowI, tr.w.RowO(wt), 1, 1, alpha, h)
			for j := 0; j < tr.cfg.Negative; j++ {
				target := tr.drawNegative(wt)
				if tr.vocab.HasPair(wc, target) {
					*negDiscarded++
					continue
				}
				*negTotal++
				tr.update(rowI, tr.w.RowO(target), 0, 1, alpha, h)
			}

			// Pass B: strong positive sampling.
			if len(tr.vocab.Entries[wc].StrongPairs) > 0 {
				for j := 0; j < tr.cfg.StrongDraws; j++ {
					target, ok := tr.vocab.NextPair(wc, vocab.Strong)
					if !ok {
						break
					}
					tr.updatePositiveSaturating(rowI, tr.w.RowO(target), float32(tr.cfg.BetaStrong), alpha, h)
				}
			}

			// Pass C: weak positive sampling.
			if len(tr.vocab.Entries[wc].WeakPairs) > 0 {
				for j := 0; j < tr.cfg.WeakDraws; j++ {
					target, ok := tr.vocab.NextPair(wc, vocab.Weak)
					if !ok {
						break
					}
					tr.updatePositiveSaturating(rowI, tr.w.RowO(target), float32(tr.cfg.BetaWeak), alpha, h)
				}
			}

			for k, v := range h {
				rowI[k] += v
			}
		}
	}
}

// drawNegative advances the shared negative-table cursor until it lands
// on an index different from exclude, per Pass A. The cursor itself is
// a plain atomic increment with wraparound handled by
// sampler.NegativeTable.At — no per-draw RNG call, by design (§9).
func (tr *Trainer) drawNegative(exclude int32) int32 {
	for {
		pos := tr.negPos.Add(1) - 1
		target := tr.neg.At(pos)
		if target != exclude {
			return target
		}
	}
}
