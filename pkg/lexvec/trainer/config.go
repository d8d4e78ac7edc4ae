package trainer

// Config holds the training hyperparameters from spec.md §6's
// configuration table (file paths and save-each-epoch live in
// config.File). WithDefaults replaces zero fields with the documented
// defaults; StrongDraws, WeakDraws, NegTableSize and HashSize keep zero,
// which is already their default.
type Config struct {
	Dim         int     // size (D): embedding dimension, default 100
	Window      int     // window (W): total context width, default 5
	MinCount    int     // vocab frequency floor, default 5
	Negative    int     // negatives per positive, default 5
	StrongDraws int     // Pass B draws per context, default 0
	WeakDraws   int     // Pass C draws per context, default 0
	Alpha       float64 // initial learning rate, default 0.025
	Sample      float64 // subsample threshold t, default 1e-4
	BetaStrong  float64 // scale for Pass B, default 1.0
	BetaWeak    float64 // scale for Pass C, default 0.25
	Threads     int     // worker count, default 1
	Epochs      int     // number of passes, default 1

	NegTableSize int // override for sampler.DefaultSize; 0 uses the default
	HashSize     int // override for vocab.DefaultHashSize; 0 uses the default
}

// WithDefaults returns a copy of c with zero fields replaced by the
// documented defaults from spec.md §6.
func (c Config) WithDefaults() Config {
	if c.Dim == 0 {
		c.Dim = 100
	}
	if c.Window == 0 {
		c.Window = 5
	}
	if c.MinCount == 0 {
		c.MinCount = 5
	}
	if c.Negative == 0 {
		c.Negative = 5
	}
	if c.Alpha == 0 {
		c.Alpha = 0.025
	}
	if c.Sample == 0 {
		c.Sample = 1e-4
	}
	if c.BetaStrong == 0 {
		c.BetaStrong = 1.0
	}
	if c.BetaWeak == 0 {
		c.BetaWeak = 0.25
	}
	if c.Threads == 0 {
		c.Threads = 1
	}
	if c.Epochs == 0 {
		c.Epochs = 1
	}
	return c
}
