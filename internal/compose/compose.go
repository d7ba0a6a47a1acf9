// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package compose reconstructs a flat event stream into a nested view.
// It is a stack machine: plain tags accumulate attributes and children in
// open frames, while tags with a registered renderer are isolated by an
// eager lookahead scan and replaced with the renderer's output. The parser
// guarantees balanced streams, so an imbalance here is a programming fault
// rather than a user input error.
package compose

import (
	"errors"
	"fmt"

	"mdpress/internal/event"
)

// ErrUnbalancedEvents reports an event stream whose Start/End brackets do
// not pair up. Parser output is always balanced; hitting this means the
// stream was corrupted or hand-built incorrectly.
var ErrUnbalancedEvents = errors.New("compose: event stream is not balanced")

// Children is the deferred subtree of a component invocation. It captures
// the component's child events together with the registry and builder, and
// re-runs composition each time Render is called. Rendering is idempotent
// and may happen zero, one, or many times.
type Children struct {
	events   []event.Event
	registry *Registry
	builder  Builder
}

// Render composes the captured child events into a view. The zero value
// renders to nil.
func (c Children) Render() (View, error) {
	if c.builder == nil {
		return nil, nil
	}
	return Compose(c.events, c.registry, c.builder)
}

// frame is one open tag: its name plus the attributes and children
// accumulated so far.
type frame struct {
	tag      string
	attrs    []Attribute
	children []View
}

// Compose runs the event stream through the stack machine and returns the
// root view as a fragment of the top-level children. reg may be nil when
// no components are registered.
func Compose(events []event.Event, reg *Registry, b Builder) (View, error) {
	// stack[0] is the root frame; it only collects children.
	stack := []frame{{}}

	i := 0
	for i < len(events) {
		ev := events[i]
		switch ev.Kind {
		case event.KindStart:
			if fn, ok := reg.Lookup(ev.Name); ok {
				attrs, childEvents, next, err := scanComponent(events, i+1)
				if err != nil {
					return nil, fmt.Errorf("%w: component %q has no matching end", err, ev.Name)
				}
				view := fn(attrs, Children{events: childEvents, registry: reg, builder: b})
				top := &stack[len(stack)-1]
				top.children = append(top.children, view)
				i = next
				continue
			}
			stack = append(stack, frame{tag: ev.Name})

		case event.KindAttr:
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: attribute %q with no open tag", ErrUnbalancedEvents, ev.Name)
			}
			top := &stack[len(stack)-1]
			top.attrs = append(top.attrs, Attribute{Name: ev.Name, Value: ev.Value})

		case event.KindText:
			top := &stack[len(stack)-1]
			top.children = append(top.children, b.Text(ev.Value))

		case event.KindEnd:
			if len(stack) == 1 {
				return nil, fmt.Errorf("%w: end event with no open tag", ErrUnbalancedEvents)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			view := b.Element(f.tag, f.attrs, f.children)
			top := &stack[len(stack)-1]
			top.children = append(top.children, view)
		}
		i++
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d tags left open at end of stream", ErrUnbalancedEvents, len(stack)-1)
	}
	return b.Fragment(stack[0].children), nil
}

// scanComponent isolates a component invocation's sub-stream. Starting
// just past the component's Start, it tracks nesting depth from 1 and
// collects Attr events at depth 1 as the component's own attributes and
// everything else as child events, until the matching End brings depth
// back to 0. Descendant attributes stay in the child buffer, so they can
// never leak onto the invocation.
func scanComponent(events []event.Event, start int) (attrs []Attribute, children []event.Event, next int, err error) {
	depth := 1
	for i := start; i < len(events); i++ {
		ev := events[i]
		switch ev.Kind {
		case event.KindStart:
			depth++
			children = append(children, ev)
		case event.KindEnd:
			depth--
			if depth == 0 {
				return attrs, children, i + 1, nil
			}
			children = append(children, ev)
		case event.KindAttr:
			if depth == 1 {
				attrs = append(attrs, Attribute{Name: ev.Name, Value: ev.Value})
			} else {
				children = append(children, ev)
			}
		case event.KindText:
			children = append(children, ev)
		}
	}
	return nil, nil, 0, ErrUnbalancedEvents
}
