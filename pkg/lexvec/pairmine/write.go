package pairmine

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// Reviewer optionally gates a mined candidate before it's written out,
// matching the shape of the host codebase's stopwords.Reviewer
// (Approve(ctx, candidate) (bool, error)) — without one, every candidate
// clearing its PMI threshold is kept.
type Reviewer interface {
	Approve(ctx context.Context, a, b string) (bool, error)
}

// WriteOptions controls which output files Run produces.
type WriteOptions struct {
	StrongPath string
	WeakPath   string
	Reviewer   Reviewer // optional
}

// Run writes strong and weak pair candidates to separate files in the
// §6 whitespace-pair format (one "<a> <b>" line per pair), applying opts
// .Reviewer if set. Strong pairs are the approved candidates marked
// Strong (at or above the strong PMI threshold and the support floor);
// weak pairs are every other approved candidate.
func Run(ctx context.Context, candidates []Candidate, opts WriteOptions) error {
	strongF, err := os.Create(opts.StrongPath)
	if err != nil {
		return fmt.Errorf("pairmine: create %s: %w", opts.StrongPath, err)
	}
	defer strongF.Close()
	strongW := bufio.NewWriter(strongF)

	weakF, err := os.Create(opts.WeakPath)
	if err != nil {
		return fmt.Errorf("pairmine: create %s: %w", opts.WeakPath, err)
	}
	defer weakF.Close()
	weakW := bufio.NewWriter(weakF)

	for _, c := range candidates {
		if opts.Reviewer != nil {
			ok, err := opts.Reviewer.Approve(ctx, c.A, c.B)
			if err != nil {
				return fmt.Errorf("pairmine: review %s/%s: %w", c.A, c.B, err)
			}
			if !ok {
				continue
			}
		}
		w := weakW
		if c.Strong {
			w = strongW
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", c.A, c.B); err != nil {
			return err
		}
	}

	if err := strongW.Flush(); err != nil {
		return err
	}
	return weakW.Flush()
}
