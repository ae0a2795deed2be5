// Package module defines the contract every service module satisfies and a port registry for bootstrap wiring
package module

import (
	phttp "phishguard/internal/platform/net/http"
)

// Module is what the api composer mounts
// It lives apart from modkit so a module can export its own Ports type without an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
