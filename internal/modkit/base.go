package modkit

import (
	"phishguard/internal/modkit/httpkit"
	str "phishguard/internal/platform/strings"
)

// Base implements Module from a Built plus the module's own route table
// Service modules embed it or return it directly
type Base struct {
	b      Built
	routes func(httpkit.Router)
}

// NewBase panics on a blank name or prefix; both are programmer errors caught at startup
func NewBase(b Built, routes func(httpkit.Router)) *Base {
	str.MustString(b.Name, "module name")
	b.Prefix = str.MustPrefix(b.Prefix)
	return &Base{b: b, routes: routes}
}

func (m *Base) Name() string   { return m.b.Name }
func (m *Base) Prefix() string { return m.b.Prefix }
func (m *Base) Ports() any     { return m.b.Ports }

// MountRoutes mounts the module's routes under Prefix behind the module middleware
func (m *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.b.Prefix, m.b.Mw, func(rr httpkit.Router) {
		if m.routes != nil {
			m.routes(rr)
		}
	})
}
