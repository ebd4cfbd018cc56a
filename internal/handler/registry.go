// Package handler implements the handler registry: a frozen mapping
// capture_name -> handler(capture, builder, ctx) that each per-language
// package populates once at init time. TypeScript's registry is built by
// overlaying JavaScript's, via Registry.Overlay.
package handler

import (
	"github.com/oxhq/semindex/internal/capture"
	"github.com/oxhq/semindex/internal/semindex"
)

// Func is one capture handler: it derives a symbol id from c, resolves its
// scope via ctx, walks the CST for auxiliary data, and mutates b accordingly.
type Func func(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext)

// Registry is a frozen, immutable-once-built mapping of capture name to
// handler. It is safe to share across concurrent invocations: handlers
// never close over per-build state, they only ever receive it as parameters.
type Registry struct {
	handlers map[string]Func
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Func)}
}

// Register binds name to fn. Intended to be called only during package
// init/setup, before the registry is shared.
func (r *Registry) Register(name string, fn Func) {
	r.handlers[name] = fn
}

// Overlay returns a new registry that starts as a copy of base with the
// receiver's own handlers layered over it, the composition TypeScript uses
// to derive its registry from JavaScript's.
func (r *Registry) Overlay(base *Registry) *Registry {
	merged := New()
	for k, v := range base.handlers {
		merged.handlers[k] = v
	}
	for k, v := range r.handlers {
		merged.handlers[k] = v
	}
	return merged
}

// Lookup returns the handler bound to name, if any.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.handlers[name]
	return fn, ok
}

// Dispatch runs c through the registry. A capture name with no handler is
// silently ignored; it does not return whether a handler ran since
// unknown-capture diagnostics are already tracked by internal/capture.
func (r *Registry) Dispatch(c capture.Node, b *semindex.DefinitionBuilder, ctx *semindex.ProcessingContext) {
	if fn, ok := r.handlers[c.Name]; ok {
		fn(c, b, ctx)
	}
}
