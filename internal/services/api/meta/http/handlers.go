// Package http serves process and model metadata
package http

import (
	"context"
	"net/http"
	"time"

	"phishguard/internal/core/model"
	"phishguard/internal/core/version"
	"phishguard/internal/modkit/httpkit"
	perr "phishguard/internal/platform/errors"
)

// Pinger is a dependency readiness can probe; nil means not configured
type Pinger interface {
	Ping(context.Context) error
}

// ArtifactSource hands out the serving artifact, nil when none is loaded
type ArtifactSource interface {
	Artifact() *model.Artifact
}

// Deps are what the meta routes report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	Model       ArtifactSource
	// ReadyTimeout bounds each readiness probe; 2s when zero
	ReadyTimeout time.Duration
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck status is ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse status is fail when any check failed, else ok
type ReadyResponse struct {
	Status string       `json:"status"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"` // seconds
}

type ModelResponse struct {
	ID        string     `json:"id"`
	CreatedAt string     `json:"created_at"`
	Classes   []string   `json:"classes"`
	Features  int        `json:"features"`
	Training  model.Info `json:"training"`
}

// Register mounts GET health, ready, version, service and model
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	m := meta{d}
	httpkit.Get(r, "/health", m.health)
	httpkit.Get(r, "/ready", m.ready)
	httpkit.Get(r, "/version", m.version)
	httpkit.Get(r, "/service", m.service)
	httpkit.Get(r, "/model", m.model)
}

type meta struct{ Deps }

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse ok
// @Router /meta/health [get]
func (m meta) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: m.ServiceName, Started: stamp(m.StartedAt), Now: stamp(time.Now())}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with model and pg checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse ok
// @Router /meta/ready [get]
func (m meta) ready(r *http.Request) (any, error) {
	checks := []ReadyCheck{m.checkModel(), m.checkPG(r.Context())}
	out := ReadyResponse{Status: "ok", Checks: checks, Now: stamp(time.Now())}
	for _, c := range checks {
		if c.Status == "fail" {
			out.Status = "fail"
		}
	}
	return out, nil
}

func (m meta) artifact() *model.Artifact {
	if m.Model == nil {
		return nil
	}
	return m.Model.Artifact()
}

func (m meta) checkModel() ReadyCheck {
	if m.artifact() == nil {
		return ReadyCheck{Name: "model", Status: "fail", Error: "no artifact loaded"}
	}
	return ReadyCheck{Name: "model", Status: "ok"}
}

// the corpus database only feeds training, so an api without one is still ready
func (m meta) checkPG(ctx context.Context) ReadyCheck {
	if m.PG == nil {
		return ReadyCheck{Name: "pg", Status: "skipped"}
	}
	ctx, cancel := context.WithTimeout(ctx, m.ReadyTimeout)
	defer cancel()
	if err := m.PG.Ping(ctx); err != nil {
		return ReadyCheck{Name: "pg", Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: "pg", Status: "ok"}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo ok
// @Router /meta/version [get]
func (m meta) version(*http.Request) (any, error) { return version.Info(m.ServiceName), nil }

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse ok
// @Router /meta/service [get]
func (m meta) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    m.ServiceName,
		Started: stamp(m.StartedAt),
		Uptime:  int64(time.Since(m.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/model Meta metaModel
// @Summary Loaded model metadata
// @Tags Meta
// @Produce json
// @Success 200 {object} ModelResponse ok
// @Router /meta/model [get]
func (m meta) model(*http.Request) (any, error) {
	a := m.artifact()
	if a == nil {
		return nil, perr.New(perr.ErrorCodeArtifactNotFound, "no model loaded")
	}
	return ModelResponse{
		ID:        a.ID.String(),
		CreatedAt: stamp(a.CreatedAt),
		Classes:   a.Classes(),
		Features:  a.Features(),
		Training:  a.Info,
	}, nil
}
