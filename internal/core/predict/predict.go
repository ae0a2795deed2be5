// Package predict turns email text into a suspicion verdict using a loaded artifact
package predict

import (
	"github.com/google/uuid"

	"phishguard/internal/core/corpus"
	"phishguard/internal/core/model"
	"phishguard/internal/core/verdict"
	perr "phishguard/internal/platform/errors"
)

// PositiveLabel is the class whose probability drives the verdict
const PositiveLabel = corpus.LabelPhishing

// Predict scores text against a and maps the phishing probability onto a band
// Empty text is valid and scores on the intercept alone
func Predict(a *model.Artifact, text string) (verdict.Band, float64, error) {
	probs, err := probabilities(a, text)
	if err != nil {
		return verdict.LikelySafe, 0, err
	}
	p, ok := probs[PositiveLabel]
	if !ok {
		return verdict.LikelySafe, 0, perr.UnknownClassf("predict: artifact classes %v lack %q", a.Classes(), PositiveLabel)
	}
	return verdict.Classify(p), p, nil
}

func probabilities(a *model.Artifact, text string) (map[string]float64, error) {
	if a == nil || a.Vectorizer == nil || a.Classifier == nil {
		return nil, perr.NotFittedf("predict: no artifact loaded")
	}
	v, err := a.Vectorizer.Transform(text)
	if err != nil {
		return nil, err
	}
	return a.Classifier.PredictProba(v)
}

// Result is one scored email
type Result struct {
	Verdict       verdict.Band
	Probability   float64
	Probabilities map[string]float64
	ModelID       uuid.UUID
}

// Service holds one artifact loaded once and shared read only
// It needs no locking; the artifact is never mutated after load
type Service struct {
	art *model.Artifact
}

// New wraps an in-memory artifact; it fails fast when the class set lacks the positive label
func New(a *model.Artifact) (*Service, error) {
	if a == nil {
		return nil, perr.NotFittedf("predict: nil artifact")
	}
	if !hasClass(a.Classes(), PositiveLabel) {
		return nil, perr.UnknownClassf("predict: artifact classes %v lack %q", a.Classes(), PositiveLabel)
	}
	return &Service{art: a}, nil
}

// Open loads the artifact at path then calls New
func Open(path string) (*Service, error) {
	a, err := model.Load(path)
	if err != nil {
		return nil, err
	}
	return New(a)
}

// Predict scores text; a nil Service reports ArtifactNotFound
func (s *Service) Predict(text string) (Result, error) {
	if s == nil {
		return Result{}, perr.New(perr.ErrorCodeArtifactNotFound, "predict: no model loaded")
	}
	probs, err := probabilities(s.art, text)
	if err != nil {
		return Result{}, err
	}
	p, ok := probs[PositiveLabel]
	if !ok {
		return Result{}, perr.UnknownClassf("predict: artifact classes %v lack %q", s.art.Classes(), PositiveLabel)
	}
	return Result{
		Verdict:       verdict.Classify(p),
		Probability:   p,
		Probabilities: probs,
		ModelID:       s.art.ID,
	}, nil
}

// Artifact exposes the loaded artifact for metadata endpoints; nil on a nil Service
func (s *Service) Artifact() *model.Artifact {
	if s == nil {
		return nil
	}
	return s.art
}

func hasClass(classes []string, want string) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}
