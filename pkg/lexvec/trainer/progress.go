package trainer

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// Progress is one periodic progress snapshot, emitted on a worker's
// local-counter flush (§4.7 step 2).
type Progress struct {
	Epoch          int
	WordCountTotal int64
	WordBudget     int64
	Alpha          float64
}

// Reporter receives progress snapshots. Trainer calls whichever Reporter
// it was constructed with, and reports nothing when it is nil. The
// reporter built by NewConsoleReporter writes a human-readable line to an
// io.Writer, using carriage returns only when that writer is a TTY so
// redirected logs don't fill up with control characters.
type Reporter func(Progress)

// NewConsoleReporter builds a Reporter that writes to w. When w is a TTY
// (checked via isatty, as the host's CLI tooling does for any stdout
// writer) each update overwrites the previous line; otherwise it appends
// a plain line per update, which is friendlier to piping into a file.
func NewConsoleReporter(w io.Writer) Reporter {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return func(p Progress) {
		pct := 0.0
		if p.WordBudget > 0 {
			pct = 100 * float64(p.WordCountTotal) / float64(p.WordBudget)
		}
		line := fmt.Sprintf("epoch %d: %s words processed (%.1f%%), alpha %.6f",
			p.Epoch+1, humanize.Comma(p.WordCountTotal), pct, p.Alpha)
		if tty {
			fmt.Fprintf(w, "\r%s", line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
}
