// Package model bundles a fitted vectorizer and classifier into one persistable artifact
package model

import (
	"time"

	"github.com/google/uuid"

	"phishguard/internal/core/logreg"
	"phishguard/internal/core/textvec"
	perr "phishguard/internal/platform/errors"
)

// DefaultPath is where shells look for the artifact when nothing else is configured
const DefaultPath = "models/phishing_model.bin"

// Info is training metadata carried alongside the fitted pair
type Info struct {
	TrainSize  int     `json:"train_size"`
	TestSize   int     `json:"test_size"`
	Accuracy   float64 `json:"accuracy"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
}

// Artifact is an immutable fitted extractor + classifier pair
// It is safe to share across goroutines once built
type Artifact struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Vectorizer *textvec.Vectorizer
	Classifier *logreg.Model
	Info       Info
}

// New wraps a fitted pair, assigning a fresh ID
func New(vec *textvec.Vectorizer, clf *logreg.Model, info Info) (*Artifact, error) {
	if err := check(vec, clf); err != nil {
		return nil, err
	}
	return &Artifact{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		Vectorizer: vec,
		Classifier: clf,
		Info:       info,
	}, nil
}

func check(vec *textvec.Vectorizer, clf *logreg.Model) error {
	if !vec.Fitted() {
		return perr.NotFittedf("model: vectorizer is not fitted")
	}
	if clf == nil || len(clf.Classes()) == 0 {
		return perr.NotFittedf("model: classifier is not fitted")
	}
	if vec.Dim() != clf.Dim() {
		return perr.InvalidArgf("model: vectorizer dim %d != classifier dim %d", vec.Dim(), clf.Dim())
	}
	return nil
}

// Classes is shorthand for the classifier's ordered labels
func (a *Artifact) Classes() []string { return a.Classifier.Classes() }

// Features is the vocabulary size
func (a *Artifact) Features() int { return a.Vectorizer.Dim() }
