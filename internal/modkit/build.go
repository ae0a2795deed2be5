package modkit

import "net/http"

// Option tweaks how a module is built; callers append theirs after the module defaults
type Option func(*Built)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// WithName sets the name used for logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the path the module mounts under
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects the ports a module needs; the concrete type belongs to that module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }
