// Package embedio reads and writes the plain-text embedding file format
// described in §6: a "V D" header line followed by one line per word,
// each holding the word followed by its D input-row components printed
// to 3 decimal digits with a trailing space.
package embedio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
	"github.com/cognicore/lexvec/pkg/lexvec/weights"
)

// Write emits path's embedding file for v/w's surviving vocabulary. Per
// §6 the output row for word i is always WI[i] — WO is never written,
// since it holds the context-side parameters, not the word vectors
// consumers of this format expect.
func Write(path string, v *vocab.Vocabulary, w *weights.Matrices) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("embedio: create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteTo(bw, v, w); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteTo writes the same format as Write to an arbitrary io.Writer, used
// directly by tests and by callers streaming to something other than a
// plain file.
func WriteTo(w io.Writer, v *vocab.Vocabulary, m *weights.Matrices) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", v.Size(), m.D); err != nil {
		return err
	}

	var sb strings.Builder
	for i := 0; i < v.Size(); i++ {
		sb.Reset()
		sb.WriteString(v.Entries[i].Word)
		row := m.RowI(int32(i))
		for _, x := range row {
			sb.WriteByte(' ')
			fmt.Fprintf(&sb, "%.3f", x)
		}
		sb.WriteByte(' ')
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// EpochPath derives the per-epoch output filename from a base output path
// per §6's filename rule: "<base>-epoch-<k>.vec" when save-each-epoch is
// set, "<base>.vec" for the final save. epoch is the 0-indexed epoch
// number used internally by the trainer; the filename suffix is
// 1-indexed (first epoch writes "-epoch-1"), matching dict2vec's
// save_vectors(args.output, current_epoch+1).
func EpochPath(base string, epoch int, saveEachEpoch bool) string {
	if saveEachEpoch {
		return fmt.Sprintf("%s-epoch-%d.vec", base, epoch+1)
	}
	return base + ".vec"
}
