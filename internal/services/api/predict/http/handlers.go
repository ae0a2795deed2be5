// Package http provides http transport for predictions
package http

import (
	stdhttp "net/http"

	"phishguard/internal/modkit/httpkit"
	"phishguard/internal/platform/logger"
	"phishguard/internal/services/api/predict/domain"
)

// Register mounts predict endpoints on the given router
func Register(r httpkit.Router, s domain.ScorerPort) {
	h := &handlers{scorer: s}
	httpkit.PostJSON[domain.PredictInput](r, "/", h.predict)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch)
}

type handlers struct{ scorer domain.ScorerPort }

// swagger:route POST /predict Predict predict
// @Summary Score one email
// @Tags Predict
// @Accept json
// @Produce json
// @Param payload body domain.PredictInput true "Email text"
// @Success 200 {object} domain.Prediction "ok"
// @Router /predict [post]
func (h *handlers) predict(r *stdhttp.Request, in domain.PredictInput) (any, error) {
	res, err := h.scorer.Predict(in.Text)
	if err != nil {
		return nil, err
	}
	out := domain.FromResult(res)
	logger.C(r.Context()).Debug().
		Str("band", out.Band).
		Float64("probability", out.Probability).
		Int("bytes", len(in.Text)).
		Msg("scored email")
	return out, nil
}

// batch scores each text in order; the first failure aborts the batch
//
// swagger:route POST /predict/batch Predict predictBatch
// @Summary Score several emails in order
// @Tags Predict
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Email texts"
// @Success 200 {object} domain.BatchOutput "ok"
// @Router /predict/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	out := domain.BatchOutput{Items: make([]domain.Prediction, 0, len(in.Texts))}
	for _, text := range in.Texts {
		if err := r.Context().Err(); err != nil {
			return nil, err
		}
		res, err := h.scorer.Predict(text)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, domain.FromResult(res))
	}
	return out, nil
}
