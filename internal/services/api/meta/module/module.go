// Package module mounts the meta endpoints under /meta
package module

import (
	"time"

	modkit "phishguard/internal/modkit"
	"phishguard/internal/modkit/httpkit"
	metahttp "phishguard/internal/services/api/meta/http"
)

// New reports on model, which may be nil; /meta/model then answers ArtifactNotFound
// and readiness fails. Readiness probes deps.PG when it can be pinged
func New(deps modkit.Deps, model metahttp.ArtifactSource, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	d := metahttp.Deps{
		ServiceName:  "phishguard-api",
		StartedAt:    time.Now(),
		Model:        model,
		ReadyTimeout: deps.Cfg.Prefix("CORE_API_").MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		d.PG = p
	}
	return modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, d) })
}
