// Package modkit wires service modules: shared deps in, routes and ports out
package modkit

import "phishguard/internal/modkit/module"

// Module is re-exported so service packages import one place
type Module = module.Module
