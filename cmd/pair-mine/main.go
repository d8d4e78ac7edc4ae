// Command pair-mine scans a corpus for skip-gram co-occurrence
// statistics and writes strong/weak pair files from the resulting PMI
// ranking, optionally gated by an LLM reviewer endpoint. Its output is
// ready to feed straight back into lexvec-train's -strong-file/
// -weak-file flags.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/cognicore/lexvec/pkg/lexvec/pairmine"
	"github.com/cognicore/lexvec/pkg/lexvec/pairreview"
)

func main() {
	var (
		input  = flag.String("input", "", "path to corpus (required)")
		strong = flag.String("strong-out", "strong.pairs", "output path for strong pairs")
		weak   = flag.String("weak-out", "weak.pairs", "output path for weak pairs")

		window             = flag.Int("window", 0, "skip-gram window width")
		weakThreshold      = flag.Float64("weak-pmi", 0, "minimum PMI to keep a candidate")
		strongThreshold    = flag.Float64("strong-pmi", 0, "minimum PMI to classify a candidate strong")
		strongMinSupport   = flag.Int("strong-min-support", 0, "minimum joint count for a strong candidate")
		maxCandidates      = flag.Int("max-candidates", 0, "cap on candidates considered, 0 = unlimited")

		reviewEndpoint = flag.String("review-endpoint", "", "optional LLM review endpoint")
		reviewAPIKey   = flag.String("review-api-key", "", "API key for the review endpoint")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	cfg := pairmine.Config{
		Window:             *window,
		WeakPMIThreshold:   *weakThreshold,
		StrongPMIThreshold: *strongThreshold,
		StrongMinSupport:   int64(*strongMinSupport),
	}

	m := pairmine.New(cfg)
	ctx := context.Background()

	log.Printf("scanning %s...", *input)
	if err := m.Scan(ctx, *input); err != nil {
		log.Fatal("scan corpus:", err)
	}

	candidates := m.Candidates()
	log.Printf("found %d candidates above PMI threshold", len(candidates))
	if *maxCandidates > 0 && len(candidates) > *maxCandidates {
		log.Printf("truncating to top %d by PMI", *maxCandidates)
		candidates = candidates[:*maxCandidates]
	}

	opts := pairmine.WriteOptions{
		StrongPath: *strong,
		WeakPath:   *weak,
	}
	if *reviewEndpoint != "" {
		opts.Reviewer = &pairreview.Client{
			Endpoint: *reviewEndpoint,
			APIKey:   *reviewAPIKey,
		}
		log.Printf("reviewing candidates against %s", *reviewEndpoint)
	}

	if err := pairmine.Run(ctx, candidates, opts); err != nil {
		log.Fatal("write pairs:", err)
	}
	log.Printf("wrote strong pairs to %s, weak pairs to %s", *strong, *weak)
}
