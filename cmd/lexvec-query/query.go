package main

import (
	"errors"
	"fmt"

	"github.com/cognicore/lexvec/pkg/lexvec/internalerr"
	"github.com/cognicore/lexvec/pkg/lexvec/neighbor"
)

func openIndex(path string) (*neighbor.Index, error) {
	return neighbor.Open(path)
}

func runQuery(idx *neighbor.Index, word string, topK int) error {
	results, err := idx.Nearest(word, topK)
	if err != nil {
		if errors.Is(err, internalerr.ErrTokenNotFound) {
			fmt.Printf("%q is not in the vocabulary.\n\n", word)
			return nil
		}
		return fmt.Errorf("query %q: %w", word, err)
	}

	fmt.Printf("\nNearest neighbors of %q:\n", word)
	for i, r := range results {
		fmt.Printf("  %2d. %-20s %.4f\n", i+1, r.Word, r.Score)
	}
	fmt.Println()
	return nil
}
