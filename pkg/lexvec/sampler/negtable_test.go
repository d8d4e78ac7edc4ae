package sampler

import (
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
)

func buildVocab(t *testing.T, corpus string) *vocab.Vocabulary {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	if err := os.WriteFile(path, []byte(corpus), 0o644); err != nil {
		t.Fatal(err)
	}
	v, err := vocab.Build(context.Background(), path, vocab.BuildOptions{MinCount: 1, HashSize: 1024})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestBuildDisabledWhenZeroSize(t *testing.T) {
	v := buildVocab(t, "a b c")
	if tbl := Build(v, 0, nil); tbl != nil {
		t.Fatalf("expected nil table when size <= 0")
	}
}

func TestCellCountsProportionalToPow075(t *testing.T) {
	// "a" appears far more often than "b" or "c".
	corpus := ""
	for i := 0; i < 100; i++ {
		corpus += "a "
	}
	corpus += "b c"
	v := buildVocab(t, corpus)

	const size = 10000
	tbl := Build(v, size, rand.New(rand.NewSource(1)))
	if tbl.Len() == 0 {
		t.Fatal("expected populated table")
	}

	var total float64
	pow := make([]float64, v.Size())
	for i, e := range v.Entries {
		pow[i] = math.Pow(float64(e.Count), 0.75)
		total += pow[i]
	}

	counts := tbl.CellCounts(v.Size())
	for i := range v.Entries {
		want := int(math.Ceil(pow[i]*float64(size)/total)) + 1
		got := counts[i]
		diff := got - want
		if diff < 0 {
			diff = -diff
		}
		// Allow extra slack for the truncated tail entry.
		if diff > 1 && i != len(v.Entries)-1 {
			t.Fatalf("entry %d (%q): got %d cells, want ~%d", i, v.Entries[i].Word, got, want)
		}
	}
}

func TestAtWrapsModuloLength(t *testing.T) {
	v := buildVocab(t, "a a a b")
	tbl := Build(v, 8, rand.New(rand.NewSource(2)))
	n := uint64(tbl.Len())
	if tbl.At(0) != tbl.At(n) {
		t.Fatalf("expected At to wrap modulo table length")
	}
}

func TestShuffleIsNotIdentityOrder(t *testing.T) {
	corpus := ""
	for i := 0; i < 50; i++ {
		corpus += "a "
	}
	for i := 0; i < 50; i++ {
		corpus += "b "
	}
	v := buildVocab(t, corpus)
	tbl := Build(v, 1000, rand.New(rand.NewSource(3)))

	allSameAsFirst := true
	for i := 0; i < tbl.Len(); i++ {
		if tbl.At(uint64(i)) != tbl.At(0) {
			allSameAsFirst = false
			break
		}
	}
	if allSameAsFirst {
		t.Fatalf("expected shuffled table to mix indices")
	}
}
