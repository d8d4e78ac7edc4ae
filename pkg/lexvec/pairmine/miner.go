// Package pairmine proposes strong/weak pair candidates from a corpus's
// own skip-gram co-occurrence statistics, so a run doesn't strictly
// depend on a hand-authored lexical resource for -strong-file/-weak-
// file. The windowed co-occurrence counting mirrors
// analytics.Analyzer.Process's skip-gram pass (intern tokens to int32
// ids, slide a window, count sorted pairs once per occurrence) adapted
// to a single continuous corpus instead of per-document batches, and to
// plain PMI instead of document-frequency PMI.
package pairmine

import (
	"bufio"
	"context"
	"math"
	"os"
	"sort"
)

// ipair is a sorted interned-token-id pair key.
type ipair [2]int32

// Config controls candidate thresholds.
type Config struct {
	Window int // skip-gram window width; default 5

	WeakPMIThreshold   float64 // candidates at or above this PMI become weak pairs
	StrongPMIThreshold float64 // candidates at or above this PMI become strong pairs
	StrongMinSupport   int64   // additionally required joint count for strong pairs
}

// WithDefaults fills zero fields with the package defaults.
func (c Config) WithDefaults() Config {
	if c.Window == 0 {
		c.Window = 5
	}
	if c.WeakPMIThreshold == 0 {
		c.WeakPMIThreshold = 2.0
	}
	if c.StrongPMIThreshold == 0 {
		c.StrongPMIThreshold = 4.0
	}
	if c.StrongMinSupport == 0 {
		c.StrongMinSupport = 5
	}
	return c
}

// Candidate is one mined pair with its PMI score and joint count.
type Candidate struct {
	A, B    string
	PMI     float64
	Support int64
	Strong  bool
}

// Miner accumulates skip-gram co-occurrence counts for a single corpus.
type Miner struct {
	cfg Config

	intern    map[string]int32
	internRev []string
	unigram   map[int32]int64
	pair      map[ipair]int64
	total     int64
}

// New constructs an empty Miner.
func New(cfg Config) *Miner {
	return &Miner{
		cfg:     cfg.WithDefaults(),
		intern:  make(map[string]int32, 4096),
		unigram: make(map[int32]int64, 4096),
		pair:    make(map[ipair]int64, 8192),
	}
}

func (m *Miner) internToken(tok string) int32 {
	if id, ok := m.intern[tok]; ok {
		return id
	}
	id := int32(len(m.internRev))
	m.intern[tok] = id
	m.internRev = append(m.internRev, tok)
	return id
}

// Scan tokenizes corpusPath on whitespace and accumulates skip-gram
// co-occurrence counts within cfg.Window of every token.
func (m *Miner) Scan(ctx context.Context, corpusPath string) error {
	f, err := os.Open(corpusPath)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	var line []string
	const maxLine = 1000
	flush := func() {
		for i := 0; i < len(line); i++ {
			idI := m.internToken(line[i])
			m.unigram[idI]++
			m.total++
			for j := i + 1; j < len(line) && j < i+m.cfg.Window; j++ {
				if line[j] == line[i] {
					continue
				}
				idJ := m.internToken(line[j])
				p := ipair{idI, idJ}
				if idI > idJ {
					p = ipair{idJ, idI}
				}
				m.pair[p]++
			}
		}
		line = line[:0]
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line = append(line, scanner.Text())
		if len(line) >= maxLine {
			flush()
		}
	}
	if len(line) > 0 {
		flush()
	}
	return scanner.Err()
}

// Candidates returns every pair whose PMI clears the weak threshold,
// classified strong when it also clears the strong threshold and
// support floor.
func (m *Miner) Candidates() []Candidate {
	if m.total == 0 {
		return nil
	}
	var out []Candidate
	for p, count := range m.pair {
		pmi := m.pmi(p[0], p[1], count)
		if pmi < m.cfg.WeakPMIThreshold {
			continue
		}
		strong := pmi >= m.cfg.StrongPMIThreshold && count >= m.cfg.StrongMinSupport
		out = append(out, Candidate{
			A:       m.internRev[p[0]],
			B:       m.internRev[p[1]],
			PMI:     pmi,
			Support: count,
			Strong:  strong,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PMI > out[j].PMI })
	return out
}

// pmi computes pointwise mutual information over unigram/pair counts
// using the same total-token normalization as a standard skip-gram PMI
// estimator: log( P(a,b) / (P(a) * P(b)) ).
func (m *Miner) pmi(a, b int32, jointCount int64) float64 {
	pa := float64(m.unigram[a]) / float64(m.total)
	pb := float64(m.unigram[b]) / float64(m.total)
	pab := float64(jointCount) / float64(m.total)
	if pa == 0 || pb == 0 || pab == 0 {
		return 0
	}
	return math.Log(pab / (pa * pb))
}
