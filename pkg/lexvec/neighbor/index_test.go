package neighbor

import (
	"strings"
	"testing"

	"github.com/cognicore/lexvec/pkg/lexvec/embedio"
	"github.com/cognicore/lexvec/pkg/lexvec/internalerr"
)

func testEmbeddings(t *testing.T) *embedio.Embeddings {
	t.Helper()
	data := "4 2\n" +
		"cat 1.000 0.000 \n" +
		"dog 0.900 0.100 \n" +
		"car -1.000 0.000 \n" +
		"bus -0.900 -0.100 \n"
	emb, err := embedio.ReadFrom(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	return emb
}

func TestNearestRanksClosestFirst(t *testing.T) {
	idx := New(testEmbeddings(t))
	results, err := idx.Nearest("cat", 3)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Word != "dog" {
		t.Errorf("expected dog as nearest to cat, got %s", results[0].Word)
	}
	if results[0].Score <= results[1].Score {
		t.Error("expected results sorted by descending score")
	}
}

func TestNearestUnknownWord(t *testing.T) {
	idx := New(testEmbeddings(t))
	if _, err := idx.Nearest("nonexistent", 3); err != internalerr.ErrTokenNotFound {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestNearestCachesRepeatedQuery(t *testing.T) {
	idx := New(testEmbeddings(t))
	first, err := idx.Nearest("cat", 2)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	second, err := idx.Nearest("cat", 2)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical cached result length")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("expected identical cached result at %d: %v vs %v", i, first[i], second[i])
		}
	}
}
