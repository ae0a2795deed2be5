package domain

import (
	"phishguard/internal/core/model"
	"phishguard/internal/core/predict"
)

// ScorerPort is the loaded model the handlers score against
// *predict.Service satisfies it
type ScorerPort interface {
	Predict(text string) (predict.Result, error)
	Artifact() *model.Artifact
}
