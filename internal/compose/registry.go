// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

// Renderer is a caller-supplied substitute for a tag. It receives the
// attributes written on the component's own tag and a thunk for its
// children, and returns the view to insert in the element's place.
type Renderer func(attrs []Attribute, children Children) View

// Registry maps tag names to renderers. Lookups are case-sensitive and a
// later registration for the same name overwrites the earlier one. A
// Registry is built once before rendering and must not be mutated during a
// composition pass; it is shared by reference across nested component
// invocations and thunk re-invocations.
type Registry struct {
	m map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Renderer)}
}

// With registers a renderer for a tag name and returns the registry for
// chaining.
func (r *Registry) With(name string, fn Renderer) *Registry {
	r.m[name] = fn
	return r
}

// Lookup returns the renderer registered for name, if any. A nil registry
// has no registrations.
func (r *Registry) Lookup(name string) (Renderer, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.m[name]
	return fn, ok
}
