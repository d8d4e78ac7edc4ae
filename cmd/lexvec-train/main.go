// Command lexvec-train runs the parallel Hogwild SGNS trainer end to
// end: build vocabulary, optionally ingest strong/weak pair files,
// build the negative-sample table, train for the configured number of
// epochs, and write the resulting embeddings.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"

	"github.com/cognicore/lexvec/pkg/lexvec/config"
	"github.com/cognicore/lexvec/pkg/lexvec/embedio"
	"github.com/cognicore/lexvec/pkg/lexvec/sampler"
	"github.com/cognicore/lexvec/pkg/lexvec/trainer"
	"github.com/cognicore/lexvec/pkg/lexvec/vocab"
	"github.com/cognicore/lexvec/pkg/lexvec/vocabstore"
	"github.com/cognicore/lexvec/pkg/lexvec/weights"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional; flags below override it)")
		input      = flag.String("input", "", "path to corpus (required)")
		output     = flag.String("output", "", "base path for embeddings (required)")
		strongFile = flag.String("strong-file", "", "strong-pair file")
		weakFile   = flag.String("weak-file", "", "weak-pair file")
		vocabCache = flag.String("vocab-cache", "", "optional SQLite vocabulary resume cache")

		dim         = flag.Int("dim", 0, "embedding dimension")
		window      = flag.Int("window", 0, "context window width")
		minCount    = flag.Int("min-count", 0, "minimum word frequency")
		negative    = flag.Int("negative", -1, "negative samples per positive draw")
		strongDraws = flag.Int("strong-draws", 0, "strong pair draws per context word")
		weakDraws   = flag.Int("weak-draws", 0, "weak pair draws per context word")
		alpha       = flag.Float64("alpha", 0, "initial learning rate")
		sample      = flag.Float64("sample", -1, "subsample threshold (0 disables subsampling)")
		betaStrong  = flag.Float64("beta-strong", 0, "strong pair update scale")
		betaWeak    = flag.Float64("beta-weak", 0, "weak pair update scale")
		threads     = flag.Int("threads", 0, "worker thread count")
		epochs      = flag.Int("epochs", 0, "training epochs")

		saveEachEpoch = flag.Bool("save-each-epoch", false, "write embeddings after every epoch")
	)
	flag.Parse()

	var f config.File
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("load config:", err)
		}
		f = *loaded
	}

	if *input != "" {
		f.Input = *input
	}
	if *output != "" {
		f.Output = *output
	}
	if *strongFile != "" {
		f.StrongFile = *strongFile
	}
	if *weakFile != "" {
		f.WeakFile = *weakFile
	}
	if *dim != 0 {
		f.Dim = *dim
	}
	if *window != 0 {
		f.Window = *window
	}
	if *minCount != 0 {
		f.MinCount = *minCount
	}
	if *negative >= 0 {
		f.Negative = *negative
	}
	if *strongDraws != 0 {
		f.StrongDraws = *strongDraws
	}
	if *weakDraws != 0 {
		f.WeakDraws = *weakDraws
	}
	if *alpha != 0 {
		f.Alpha = *alpha
	}
	if *sample >= 0 {
		f.Sample = sample
	}
	if *betaStrong != 0 {
		f.BetaStrong = *betaStrong
	}
	if *betaWeak != 0 {
		f.BetaWeak = *betaWeak
	}
	if *threads != 0 {
		f.Threads = *threads
	}
	if *epochs != 0 {
		f.Epochs = *epochs
	}
	if *saveEachEpoch {
		f.SaveEachEpoch = true
	}

	if err := f.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	cfg := f.TrainerConfig()

	v, err := buildVocabulary(ctx, &f, cfg, *vocabCache)
	if err != nil {
		log.Fatal("build vocabulary:", err)
	}
	log.Printf("vocabulary: %d words, %d train words", v.Size(), v.TrainWords)

	var neg *sampler.NegativeTable
	if cfg.Negative > 0 {
		negSize := cfg.NegTableSize
		if negSize == 0 {
			negSize = sampler.DefaultSize
		}
		neg = sampler.Build(v, negSize, rand.New(rand.NewSource(1)))
		log.Printf("negative table: %d cells", neg.Len())
	}

	rnd := rand.New(rand.NewSource(1))
	w := weights.New(v.Size(), cfg.Dim, rnd)

	reporter := trainer.NewConsoleReporter(os.Stdout)
	tr := trainer.New(cfg, v, neg, w, f.Input, reporter)

	err = tr.Run(func(epoch int) error {
		if !f.SaveEachEpoch && epoch != cfg.Epochs-1 {
			return nil
		}
		path := embedio.EpochPath(f.Output, epoch, f.SaveEachEpoch)
		if err := embedio.Write(path, v, w); err != nil {
			return err
		}
		log.Printf("epoch %d complete, wrote %s", epoch+1, path)
		return nil
	})
	if err != nil {
		log.Fatal("training failed:", err)
	}

	total, discarded := tr.NegSampStats()
	log.Printf("done: %d negative draws, %d discarded for known pairs", total, discarded)
}

// buildVocabulary loads a cached vocabulary from vocabCachePath when its
// fingerprint matches the current corpus/pair-file/min-count
// combination, otherwise scans the corpus and ingests pair files fresh,
// populating the cache (if configured) for next time.
func buildVocabulary(ctx context.Context, f *config.File, cfg trainer.Config, vocabCachePath string) (*vocab.Vocabulary, error) {
	var store *vocabstore.Store
	var fingerprint string
	if vocabCachePath != "" {
		var err error
		store, err = vocabstore.Open(ctx, vocabCachePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		fingerprint = vocabstore.Fingerprint(f.Input, cfg.MinCount, cfg.Sample, f.StrongFile, f.WeakFile)
		if v, ok, err := store.Load(ctx, fingerprint); err != nil {
			return nil, err
		} else if ok {
			log.Printf("vocab-cache: hit for %s", f.Input)
			return v, nil
		}
	}

	v, err := vocab.Build(ctx, f.Input, vocab.BuildOptions{
		MinCount: cfg.MinCount,
		Sample:   cfg.Sample,
		HashSize: cfg.HashSize,
	})
	if err != nil {
		return nil, err
	}
	if err := v.IngestPairs(vocab.Strong, f.StrongFile); err != nil {
		return nil, err
	}
	if err := v.IngestPairs(vocab.Weak, f.WeakFile); err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.Save(ctx, fingerprint, v); err != nil {
			log.Printf("vocab-cache: save failed: %v", err)
		}
	}
	return v, nil
}
