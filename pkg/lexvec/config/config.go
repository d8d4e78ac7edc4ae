// Package config loads the YAML-defined hyperparameter configuration that
// fills a trainer.Config, following the same "read file, unmarshal,
// return a plain struct" shape as the host codebase's config package.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexvec/pkg/lexvec/trainer"
)

// File is the on-disk YAML shape for a training run's hyperparameters and
// file paths. Any field left zero falls back to trainer.Config.WithDefaults.
type File struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	StrongFile string `yaml:"strong_file"`
	WeakFile   string `yaml:"weak_file"`

	Dim         int      `yaml:"dim"`
	Window      int      `yaml:"window"`
	MinCount    int      `yaml:"min_count"`
	Negative    int      `yaml:"negative"`
	StrongDraws int      `yaml:"strong_draws"`
	WeakDraws   int      `yaml:"weak_draws"`
	Alpha       float64  `yaml:"alpha"`
	Sample      *float64 `yaml:"sample"` // nil means unset; a present 0 disables subsampling (§4.3)
	BetaStrong  float64  `yaml:"beta_strong"`
	BetaWeak    float64  `yaml:"beta_weak"`
	Threads     int      `yaml:"threads"`
	Epochs      int      `yaml:"epochs"`

	NegTableSize int `yaml:"neg_table_size"`
	HashSize     int `yaml:"hash_size"`

	SaveEachEpoch bool `yaml:"save_each_epoch"`
}

// Load reads and unmarshals a YAML config file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &f, nil
}

// TrainerConfig converts the loaded file into a trainer.Config, applying
// defaults for any hyperparameter left at its zero value. Sample is
// special-cased: WithDefaults can't tell "left zero" from "explicitly
// disabled" apart on a plain float64, so the zero-value default fill
// runs first and an explicitly-set f.Sample (including 0) is applied
// after, overriding it.
func (f *File) TrainerConfig() trainer.Config {
	cfg := trainer.Config{
		Dim:          f.Dim,
		Window:       f.Window,
		MinCount:     f.MinCount,
		Negative:     f.Negative,
		StrongDraws:  f.StrongDraws,
		WeakDraws:    f.WeakDraws,
		Alpha:        f.Alpha,
		BetaStrong:   f.BetaStrong,
		BetaWeak:     f.BetaWeak,
		Threads:      f.Threads,
		Epochs:       f.Epochs,
		NegTableSize: f.NegTableSize,
		HashSize:     f.HashSize,
	}.WithDefaults()

	if f.Sample != nil {
		cfg.Sample = *f.Sample
	}
	return cfg
}

// Validate rejects configurations that can never produce a usable run,
// independent of the values trainer.Config.WithDefaults would fill in.
func (f *File) Validate() error {
	if f.Input == "" {
		return fmt.Errorf("config: input path is required")
	}
	if f.Output == "" {
		return fmt.Errorf("config: output path is required")
	}
	return nil
}
