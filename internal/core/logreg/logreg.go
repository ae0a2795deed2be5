// Package logreg fits and applies an L2 regularized binary logistic regression
// over sparse textvec rows
package logreg

import (
	"context"
	"math"
	"runtime"
	"slices"

	"phishguard/internal/core/textvec"
	perr "phishguard/internal/platform/errors"
)

// Options controls the solver
type Options struct {
	C       float64 `yaml:"c"`        // inverse regularization strength
	MaxIter int     `yaml:"max_iter"` // L-BFGS iteration cap
	Tol     float64 `yaml:"tol"`      // stop when max |gradient| falls below this
	History int     `yaml:"history"`  // L-BFGS memory
	Workers int     `yaml:"workers"`  // concurrent gradient blocks; 0 means NumCPU
}

// DefaultOptions matches the classic liblinear/lbfgs defaults
func DefaultOptions() Options {
	return Options{C: 1.0, MaxIter: 1000, Tol: 1e-4, History: 10}
}

func (o Options) validate() error {
	switch {
	case !(o.C > 0) || math.IsInf(o.C, 0):
		return perr.InvalidArgf("logreg: C must be positive, got %v", o.C)
	case o.MaxIter < 1:
		return perr.InvalidArgf("logreg: max iterations must be >= 1, got %d", o.MaxIter)
	case !(o.Tol > 0):
		return perr.InvalidArgf("logreg: tolerance must be positive, got %v", o.Tol)
	case o.History < 1:
		return perr.InvalidArgf("logreg: history must be >= 1, got %d", o.History)
	case o.Workers < 0:
		return perr.InvalidArgf("logreg: workers must be >= 0, got %d", o.Workers)
	}
	return nil
}

// FitInfo reports how the solver finished
type FitInfo struct {
	Iterations int
	Converged  bool
	Loss       float64
}

// Model is a fitted binary classifier; Classes[1] is the positive class
// Models are immutable and safe for concurrent use
type Model struct {
	classes   []string
	coef      []float64
	intercept float64
}

// Fit trains on rows x with labels y
// Exactly two distinct labels are required; they are ordered ascending
func Fit(ctx context.Context, x []textvec.Vector, y []string, opts Options) (*Model, FitInfo, error) {
	if err := opts.validate(); err != nil {
		return nil, FitInfo{}, err
	}
	if len(x) == 0 || len(x) != len(y) {
		return nil, FitInfo{}, perr.InvalidArgf("logreg: %d rows with %d labels", len(x), len(y))
	}
	dim := x[0].Dim
	for i, row := range x {
		if row.Dim != dim {
			return nil, FitInfo{}, perr.InvalidArgf("logreg: row %d has dim %d, want %d", i, row.Dim, dim)
		}
	}

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	if len(classes) != 2 {
		return nil, FitInfo{}, perr.InvalidArgf("logreg: need exactly 2 classes, got %d %v", len(classes), classes)
	}
	target := make([]float64, len(y))
	for i, label := range y {
		if label == classes[1] {
			target[i] = 1
		}
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	obj := newObjective(x, target, dim, opts.C, workers)
	res, err := lbfgs(ctx, obj, opts.History, opts.MaxIter, opts.Tol)
	if err != nil {
		return nil, FitInfo{}, err
	}
	m := &Model{
		classes:   classes,
		coef:      slices.Clone(res.x[:dim]),
		intercept: res.x[dim],
	}
	return m, FitInfo{Iterations: res.iterations, Converged: res.converged, Loss: res.f}, nil
}

// Restore rebuilds a model from persisted parameters
func Restore(classes []string, coef []float64, intercept float64) (*Model, error) {
	if len(classes) != 2 || classes[0] >= classes[1] {
		return nil, perr.InvalidArgf("logreg: classes must be 2 ascending labels, got %v", classes)
	}
	if len(coef) == 0 {
		return nil, perr.InvalidArgf("logreg: empty coefficient vector")
	}
	for _, v := range append([]float64{intercept}, coef...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, perr.InvalidArgf("logreg: non-finite parameter %v", v)
		}
	}
	return &Model{classes: slices.Clone(classes), coef: slices.Clone(coef), intercept: intercept}, nil
}

func (m *Model) check(v textvec.Vector) error {
	if m == nil || len(m.classes) == 0 {
		return perr.NotFittedf("logreg: model is not fitted")
	}
	if v.Dim != len(m.coef) {
		return perr.InvalidArgf("logreg: vector dim %d, model dim %d", v.Dim, len(m.coef))
	}
	return nil
}

// Decision returns the raw margin w·x+b
func (m *Model) Decision(v textvec.Vector) (float64, error) {
	if err := m.check(v); err != nil {
		return 0, err
	}
	return v.Dot(m.coef) + m.intercept, nil
}

// PredictProba returns class probabilities keyed by label, summing to 1
func (m *Model) PredictProba(v textvec.Vector) (map[string]float64, error) {
	z, err := m.Decision(v)
	if err != nil {
		return nil, err
	}
	p := sigmoid(z)
	return map[string]float64{m.classes[0]: 1 - p, m.classes[1]: p}, nil
}

// Predict returns the most probable label; an exact tie goes to the first class
func (m *Model) Predict(v textvec.Vector) (string, error) {
	z, err := m.Decision(v)
	if err != nil {
		return "", err
	}
	if sigmoid(z) > 0.5 {
		return m.classes[1], nil
	}
	return m.classes[0], nil
}

// Classes returns the ordered labels
func (m *Model) Classes() []string { return slices.Clone(m.classes) }

// Coef returns a copy of the weights
func (m *Model) Coef() []float64 { return slices.Clone(m.coef) }

// Intercept returns the bias term
func (m *Model) Intercept() float64 { return m.intercept }

// Dim is the expected input dimensionality
func (m *Model) Dim() int { return len(m.coef) }
