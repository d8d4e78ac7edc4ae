// Package neighbor answers nearest-neighbor queries ("which words are
// closest to this one by cosine similarity") against a loaded embeddings
// file. It is the consumer that promotes golang-lru from an indirect
// dependency of the host codebase to a direct one here: repeated queries
// for the same word during an interactive session are common enough
// that caching the sorted result list is worth the bookkeeping.
package neighbor

import (
	"math"
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/lexvec/pkg/lexvec/embedio"
	"github.com/cognicore/lexvec/pkg/lexvec/internalerr"
)

// Result is one scored neighbor.
type Result struct {
	Word  string
	Score float64
}

// Index is a queryable, cached nearest-neighbor index over a loaded
// embeddings file.
type Index struct {
	emb   *embedio.Embeddings
	norms []float64
	cache *lru.Cache[string, []Result]
}

// cacheSize bounds the number of distinct queries kept warm; an
// interactive session rarely revisits more than a few hundred words.
const cacheSize = 512

// Open loads path's embeddings file and builds a query index over it.
func Open(path string) (*Index, error) {
	emb, err := embedio.Read(path)
	if err != nil {
		return nil, err
	}
	return New(emb), nil
}

// New builds an Index over an already-loaded embeddings set.
func New(emb *embedio.Embeddings) *Index {
	norms := make([]float64, emb.Len())
	for i, vec := range emb.Vectors {
		var sum float64
		for _, x := range vec {
			sum += float64(x) * float64(x)
		}
		norms[i] = math.Sqrt(sum)
	}
	cache, _ := lru.New[string, []Result](cacheSize)
	return &Index{emb: emb, norms: norms, cache: cache}
}

// Nearest returns the k words with highest cosine similarity to word,
// excluding word itself. Results are cached by (word, k).
func (idx *Index) Nearest(word string, k int) ([]Result, error) {
	vec, ok := idx.emb.Lookup(word)
	if !ok {
		return nil, internalerr.ErrTokenNotFound
	}
	key := word + "\x00" + strconv.Itoa(k)
	if cached, ok := idx.cache.Get(key); ok {
		return cached, nil
	}

	qi, _ := idx.emb.IndexOf(word)
	qNorm := idx.norms[qi]

	results := make([]Result, 0, idx.emb.Len())
	for i, w := range idx.emb.Words {
		if w == word {
			continue
		}
		if idx.norms[i] == 0 || qNorm == 0 {
			continue
		}
		var dot float64
		other := idx.emb.Vectors[i]
		for d := range vec {
			dot += float64(vec[d]) * float64(other[d])
		}
		results = append(results, Result{Word: w, Score: dot / (qNorm * idx.norms[i])})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > 0 && len(results) > k {
		results = results[:k]
	}

	idx.cache.Add(key, results)
	return results, nil
}
