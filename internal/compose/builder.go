// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// builder.go defines the rendering capability the composer needs from a
// host framework, and an HTML implementation of it used by the server.
package compose

import (
	"html"
	"strings"
)

// View is an opaque rendered node. Its concrete type belongs to the
// Builder that produced it.
type View any

// Attribute is one name/value pair on an element or component invocation.
type Attribute struct {
	Name  string
	Value string
}

// Builder is the capability contract a host rendering layer provides:
// construct an element with attributes and children, construct a text
// node, and compose an ordered list of views into one fragment.
type Builder interface {
	Element(tag string, attrs []Attribute, children []View) View
	Text(text string) View
	Fragment(children []View) View
}

// HTML is the view type produced by HTMLBuilder.
type HTML string

// HTMLBuilder renders views as escaped HTML strings. It is the default
// host backend for server-side rendering.
type HTMLBuilder struct{}

// htmlVoid lists elements serialized without a closing tag.
var htmlVoid = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Element serializes a tag with its attributes and children. Child views
// must have been produced by this builder.
func (HTMLBuilder) Element(tag string, attrs []Attribute, children []View) View {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	if htmlVoid[strings.ToLower(tag)] && len(children) == 0 {
		b.WriteString(" />")
		return HTML(b.String())
	}
	b.WriteByte('>')
	for _, c := range children {
		b.WriteString(string(c.(HTML)))
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return HTML(b.String())
}

// Text returns an escaped text node.
func (HTMLBuilder) Text(text string) View {
	return HTML(html.EscapeString(text))
}

// Fragment concatenates child views in order.
func (HTMLBuilder) Fragment(children []View) View {
	var b strings.Builder
	for _, c := range children {
		b.WriteString(string(c.(HTML)))
	}
	return HTML(b.String())
}
