// Package textvec turns raw email text into TF-IDF weighted sparse vectors
package textvec

import (
	"math"
	"sort"

	"phishguard/internal/core/normalize"
	perr "phishguard/internal/platform/errors"
)

// Config controls analysis and vocabulary size
type Config struct {
	NgramMin    int `yaml:"ngram_min"`
	NgramMax    int `yaml:"ngram_max"`
	MaxFeatures int `yaml:"max_features"` // 0 keeps every term
}

// DefaultConfig is unigrams plus bigrams capped at 5000 terms
func DefaultConfig() Config {
	return Config{NgramMin: 1, NgramMax: 2, MaxFeatures: 5000}
}

// Validate checks ngram bounds and the feature cap
func (c Config) Validate() error {
	if c.NgramMin < 1 || c.NgramMax < c.NgramMin {
		return perr.InvalidArgf("textvec: bad ngram range [%d,%d]", c.NgramMin, c.NgramMax)
	}
	if c.MaxFeatures < 0 {
		return perr.InvalidArgf("textvec: max features must be >= 0, got %d", c.MaxFeatures)
	}
	return nil
}

// Vectorizer learns a vocabulary with smoothed IDF weights and projects text onto it
// A fitted Vectorizer is read only and safe for concurrent Transform calls
type Vectorizer struct {
	cfg   Config
	norm  *normalize.Normalizer
	vocab map[string]int
	terms []string
	idf   []float64
}

// New returns an unfitted vectorizer
func New(cfg Config) (*Vectorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Vectorizer{cfg: cfg, norm: normalize.New()}, nil
}

// Restore rebuilds a fitted vectorizer from its frozen vocabulary and IDF
// terms must be strictly ascending and parallel to idf
func Restore(cfg Config, terms []string, idf []float64) (*Vectorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(terms) == 0 || len(terms) != len(idf) {
		return nil, perr.InvalidArgf("textvec: %d terms with %d idf weights", len(terms), len(idf))
	}
	if cfg.MaxFeatures > 0 && len(terms) > cfg.MaxFeatures {
		return nil, perr.InvalidArgf("textvec: %d terms exceed cap %d", len(terms), cfg.MaxFeatures)
	}
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		if i > 0 && terms[i-1] >= t {
			return nil, perr.InvalidArgf("textvec: vocabulary not sorted at %d", i)
		}
		w := idf[i]
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 1 {
			return nil, perr.InvalidArgf("textvec: bad idf %v for %q", w, t)
		}
		vocab[t] = i
	}
	return &Vectorizer{
		cfg:   cfg,
		norm:  normalize.New(),
		vocab: vocab,
		terms: append([]string(nil), terms...),
		idf:   append([]float64(nil), idf...),
	}, nil
}

// Analyze returns the n-gram terms for text before vocabulary lookup
func (v *Vectorizer) Analyze(text string) []string {
	toks := Tokenize(v.norm.Normalize(text))
	kept := toks[:0]
	for _, t := range toks {
		if !IsStopWord(t) {
			kept = append(kept, t)
		}
	}
	return ngrams(kept, v.cfg.NgramMin, v.cfg.NgramMax)
}

type termStat struct {
	term  string
	df    int
	count int
}

// Fit learns vocabulary and IDF from texts, replacing any previous fit
func (v *Vectorizer) Fit(texts []string) error {
	if len(texts) == 0 {
		return perr.InvalidArgf("textvec: cannot fit an empty corpus")
	}
	stats := map[string]*termStat{}
	seen := map[string]struct{}{}
	for _, text := range texts {
		clear(seen)
		for _, t := range v.Analyze(text) {
			st := stats[t]
			if st == nil {
				st = &termStat{term: t}
				stats[t] = st
			}
			st.count++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				st.df++
			}
		}
	}
	if len(stats) == 0 {
		return perr.InvalidArgf("textvec: empty vocabulary; every document is stop words or too short")
	}

	ranked := make([]*termStat, 0, len(stats))
	for _, st := range stats {
		ranked = append(ranked, st)
	}
	if v.cfg.MaxFeatures > 0 && len(ranked) > v.cfg.MaxFeatures {
		sort.Slice(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.df != b.df {
				return a.df > b.df
			}
			if a.count != b.count {
				return a.count > b.count
			}
			return a.term < b.term
		})
		ranked = ranked[:v.cfg.MaxFeatures]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].term < ranked[j].term })

	n := float64(len(texts))
	v.vocab = make(map[string]int, len(ranked))
	v.terms = make([]string, len(ranked))
	v.idf = make([]float64, len(ranked))
	for i, st := range ranked {
		v.vocab[st.term] = i
		v.terms[i] = st.term
		v.idf[i] = math.Log((1+n)/(1+float64(st.df))) + 1
	}
	return nil
}

// Transform projects text onto the fitted vocabulary
// Unknown terms are ignored; the row is L2 normalized unless it is empty
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.Fitted() {
		return Vector{}, perr.NotFittedf("textvec: transform before fit")
	}
	counts := map[int]int{}
	for _, t := range v.Analyze(text) {
		if i, ok := v.vocab[t]; ok {
			counts[i]++
		}
	}
	vec := Vector{Dim: len(v.terms)}
	if len(counts) == 0 {
		return vec, nil
	}
	vec.Indices = make([]int, 0, len(counts))
	for i := range counts {
		vec.Indices = append(vec.Indices, i)
	}
	sort.Ints(vec.Indices)
	vec.Values = make([]float64, len(vec.Indices))
	var ss float64
	for k, i := range vec.Indices {
		w := float64(counts[i]) * v.idf[i]
		vec.Values[k] = w
		ss += w * w
	}
	if norm := math.Sqrt(ss); norm > 0 {
		for k := range vec.Values {
			vec.Values[k] /= norm
		}
	}
	return vec, nil
}

// TransformAll maps Transform over texts
func (v *Vectorizer) TransformAll(texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, t := range texts {
		vec, err := v.Transform(t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// FitTransform fits on texts and returns their vectors
func (v *Vectorizer) FitTransform(texts []string) ([]Vector, error) {
	if err := v.Fit(texts); err != nil {
		return nil, err
	}
	return v.TransformAll(texts)
}

// Fitted reports whether a vocabulary has been learned
func (v *Vectorizer) Fitted() bool { return v != nil && len(v.terms) > 0 }

// Dim is the vocabulary size (0 before fit)
func (v *Vectorizer) Dim() int { return len(v.terms) }

// Config returns the analysis configuration
func (v *Vectorizer) Config() Config { return v.cfg }

// Terms returns a copy of the vocabulary in index order
func (v *Vectorizer) Terms() []string { return append([]string(nil), v.terms...) }

// IDF returns a copy of the idf weights in index order
func (v *Vectorizer) IDF() []float64 { return append([]float64(nil), v.idf...) }

// Index returns the column of term, if present
func (v *Vectorizer) Index(term string) (int, bool) {
	i, ok := v.vocab[term]
	return i, ok
}
