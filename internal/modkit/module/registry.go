package module

import "sync"

// registry of port sets keyed by module name, filled while main composes the process
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores ports under name, replacing any earlier set
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs returns the port set registered under name when it has type T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset clears the registry; tests call it between api mounts
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
