package pipeline

import (
	"errors"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"phishguard/internal/core/logreg"
	"phishguard/internal/core/textvec"
	perr "phishguard/internal/platform/errors"
)

// Options is a training recipe
type Options struct {
	Seed       uint64         `yaml:"seed"`
	TestSize   float64        `yaml:"test_size"`
	Features   textvec.Config `yaml:"features"`
	Classifier logreg.Options `yaml:"classifier"`
}

// DefaultOptions reproduces the reference training run
func DefaultOptions() Options {
	return Options{
		Seed:       42,
		TestSize:   0.2,
		Features:   textvec.DefaultConfig(),
		Classifier: logreg.DefaultOptions(),
	}
}

// Validate checks the split fraction and nested configs
func (o Options) Validate() error {
	if math.IsNaN(o.TestSize) || o.TestSize <= 0 || o.TestSize >= 1 {
		return perr.InvalidArgf("pipeline: test size must be in (0,1), got %v", o.TestSize)
	}
	return o.Features.Validate()
}

// LoadOptions reads a YAML recipe over the defaults; keys absent from the file keep their default
func LoadOptions(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Options{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "pipeline: recipe %s not found", path)
		}
		return Options{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "pipeline: open recipe %s", path)
	}
	defer f.Close()
	return DecodeOptions(f)
}

// DecodeOptions is LoadOptions over a reader; unknown keys are rejected
func DecodeOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "pipeline: decode recipe")
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
