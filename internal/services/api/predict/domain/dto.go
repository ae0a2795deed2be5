// Package domain defines the request and response shapes of the predict api
package domain

import (
	"phishguard/internal/core/predict"
	"phishguard/internal/core/verdict"
)

// PredictInput is one email to score
type PredictInput struct {
	Text string `json:"text" validate:"notblank,max=200000" example:"Free money now!!! Click here"`
}

// BatchInput scores several emails against the same artifact
type BatchInput struct {
	Texts []string `json:"texts" validate:"required,min=1,max=100,dive,notblank,max=200000"`
}

// Prediction is the wire view of a scored email
type Prediction struct {
	Verdict     string  `json:"verdict"     example:"Very Suspicious"`
	Band        string  `json:"band"        example:"very_suspicious"`
	Probability float64 `json:"probability" example:"0.93"`
	Percent     string  `json:"percent"     example:"93.00%"`
	Risky       bool    `json:"risky"       example:"true"`
	Advice      string  `json:"advice"`
	ModelID     string  `json:"model_id"`
}

// BatchOutput keeps input order
type BatchOutput struct {
	Items []Prediction `json:"items"`
}

// FromResult renders a core result for the wire
func FromResult(r predict.Result) Prediction {
	p := verdict.Clamp(r.Probability)
	return Prediction{
		Verdict:     r.Verdict.String(),
		Band:        r.Verdict.Key(),
		Probability: p,
		Percent:     verdict.Percent(p),
		Risky:       r.Verdict.Risky(),
		Advice:      r.Verdict.Advice(),
		ModelID:     r.ModelID.String(),
	}
}
