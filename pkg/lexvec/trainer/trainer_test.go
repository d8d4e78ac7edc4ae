package trainer

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/lexvec/pkg/lexvec/sampler"
	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
	"github.com/cognicore/lexvec/pkg/lexvec/weights"
)

func writeCorpus(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// buildFixture trains a small co-occurrence corpus ("cat" and "dog" never
// share a window but have the same neighbours, "the _ sat on the") and
// returns the resulting vocabulary and weight matrices.
func buildFixture(t *testing.T, cfg Config, pairFile string, pairKind vocab.PairKind) (*vocab.Vocabulary, *weights.Matrices) {
	t.Helper()
	corpus := strings.Repeat("the cat sat on the mat the dog sat on the rug the bird flew over the tree ", 50)
	path := writeCorpus(t, corpus)

	v, err := vocab.Build(context.Background(), path, vocab.BuildOptions{MinCount: 1, Sample: 0})
	if err != nil {
		t.Fatalf("vocab.Build: %v", err)
	}

	if pairFile != "" {
		if err := v.IngestPairs(pairKind, pairFile); err != nil {
			t.Fatalf("IngestPairs: %v", err)
		}
	}

	rnd := rand.New(rand.NewSource(7))
	w := weights.New(v.Size(), cfg.Dim, rnd)

	var neg *sampler.NegativeTable
	if cfg.Negative > 0 {
		negSize := cfg.NegTableSize
		if negSize == 0 {
			negSize = 20000
		}
		neg = sampler.Build(v, negSize, rand.New(rand.NewSource(3)))
	}

	tr := New(cfg, v, neg, w, path, nil)
	if err := tr.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return v, w
}

// Scenario 1 (§8), on the shared-context fixture: two words that appear
// in the same surrounding contexts should end up with positive cosine
// similarity between their input-row embeddings.
func TestScenario1_SharedContextWordsGainPositiveSimilarity(t *testing.T) {
	cfg := Config{
		Dim: 20, Window: 5, MinCount: 1, Negative: 5,
		Alpha: 0.05, Sample: 0, Threads: 2, Epochs: 3,
	}.WithDefaults()

	v, w := buildFixture(t, cfg, "", 0)

	catIdx, ok := v.Lookup("cat")
	if !ok {
		t.Fatal("expected 'cat' in vocabulary")
	}
	dogIdx, ok := v.Lookup("dog")
	if !ok {
		t.Fatal("expected 'dog' in vocabulary")
	}

	sim := cosine(w.RowI(catIdx), w.RowI(dogIdx))
	if sim <= 0 {
		t.Errorf("expected cat/dog cosine similarity > 0 after training, got %f", sim)
	}
}

// Scenario 2 (§8): adding a strong-pair relation between two words that
// don't naturally co-occur should push their embeddings closer together
// than an otherwise identical run without the pair.
func TestScenario2_StrongPairIncreasesSimilarity(t *testing.T) {
	baseCfg := Config{
		Dim: 20, Window: 5, MinCount: 1, Negative: 5,
		Alpha: 0.05, Sample: 0, Threads: 2, Epochs: 3,
	}.WithDefaults()

	vBase, wBase := buildFixture(t, baseCfg, "", 0)
	birdIdx, ok := vBase.Lookup("bird")
	if !ok {
		t.Fatal("expected 'bird' in vocabulary")
	}
	matIdx, ok := vBase.Lookup("mat")
	if !ok {
		t.Fatal("expected 'mat' in vocabulary")
	}
	baseline := cosine(wBase.RowI(birdIdx), wBase.RowI(matIdx))

	dir := t.TempDir()
	pairPath := filepath.Join(dir, "pairs.txt")
	if err := os.WriteFile(pairPath, []byte(strings.Repeat("bird mat\n", 200)), 0o644); err != nil {
		t.Fatalf("write pairs: %v", err)
	}

	pairedCfg := baseCfg
	pairedCfg.StrongDraws = 3
	pairedCfg.BetaStrong = 1.0

	vPaired, wPaired := buildFixture(t, pairedCfg, pairPath, vocab.Strong)
	birdIdx2, _ := vPaired.Lookup("bird")
	matIdx2, _ := vPaired.Lookup("mat")
	withPair := cosine(wPaired.RowI(birdIdx2), wPaired.RowI(matIdx2))

	if withPair <= baseline {
		t.Errorf("expected strong-pair run to raise bird/mat similarity above baseline: baseline=%f withPair=%f", baseline, withPair)
	}
}

// Boundary case (§8): negative=0, strong_draws=0, weak_draws=0 degenerates
// to pure positive-only SGD — training must run to completion without ever
// touching the (nil) negative table.
func TestBoundary_NoNegativeNoPairsRunsPurePositiveSGD(t *testing.T) {
	cfg := Config{
		Dim: 10, Window: 5, MinCount: 1, Negative: 0,
		StrongDraws: 0, WeakDraws: 0, Alpha: 0.05, Sample: 0,
		Threads: 2, Epochs: 1,
	}.WithDefaults()
	cfg.Negative = 0 // WithDefaults would otherwise fill this to 5

	v, w := buildFixture(t, cfg, "", 0)

	catIdx, ok := v.Lookup("cat")
	if !ok {
		t.Fatal("expected 'cat' in vocabulary")
	}
	// buildFixture initializes weights from seed 7; rebuild that starting
	// row so the check sees an actual update, not just the random init.
	initial := weights.New(v.Size(), cfg.Dim, rand.New(rand.NewSource(7))).RowI(catIdx)
	row := w.RowI(catIdx)
	unchanged := true
	for k, x := range row {
		if x != initial[k] {
			unchanged = false
			break
		}
	}
	if unchanged {
		t.Error("expected cat's input row to have been updated by positive-only SGD")
	}
}

func TestRunEpoch_CompletesWithFourThreadsAndOneThread(t *testing.T) {
	cfg := Config{
		Dim: 8, Window: 5, MinCount: 1, Negative: 5,
		Alpha: 0.05, Sample: 0, Threads: 4, Epochs: 1,
	}.WithDefaults()

	v, _ := buildFixture(t, cfg, "", 0)
	_ = v

	// buildFixture already ran tr.Run; this test only needs the fixture
	// to have completed without hanging, which Go's test timeout enforces
	// implicitly. A second run with one thread must also leave a
	// non-empty vocabulary and an allocated WI matrix:
	cfg2 := cfg
	cfg2.Threads = 1
	v2, w2 := buildFixture(t, cfg2, "", 0)
	if v2.Size() == 0 {
		t.Fatal("expected non-empty vocabulary")
	}
	if len(w2.WI) == 0 {
		t.Fatal("expected allocated WI matrix")
	}
}
