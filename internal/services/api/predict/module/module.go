// Package module wires the predict endpoints into the API
package module

import (
	modkit "phishguard/internal/modkit"
	"phishguard/internal/modkit/httpkit"
	"phishguard/internal/platform/net/middleware"
	"phishguard/internal/services/api/predict/domain"
	predicthttp "phishguard/internal/services/api/predict/http"
)

// Ports is what the module needs injected; it is also what the registry exposes under "predict"
type Ports struct {
	Scorer domain.ScorerPort
}

// New mounts POST /predict and /predict/batch, JSON bodies only
// Ports{Scorer} must arrive through modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("predict"),
		modkit.WithPrefix("/predict"),
		modkit.WithMiddlewares(middleware.AllowContentType("application/json")),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Scorer == nil {
		panic("predict module: Ports{Scorer} is required")
	}
	return modkit.NewBase(b, func(r httpkit.Router) {
		predicthttp.Register(r, ports.Scorer)
	})
}
