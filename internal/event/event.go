// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package event defines the flat instruction stream shared between the
// Markdown parser and the view composer. A document is parsed once into a
// sequence of events which can be serialized, cached, and later composed
// into a nested view without re-parsing the source.
package event

import (
	"encoding/json"
	"fmt"
)

// Kind identifies one of the four event variants.
type Kind uint8

const (
	// KindStart opens an element or component invocation.
	KindStart Kind = iota
	// KindEnd closes the most recently opened, still-open start event.
	KindEnd
	// KindAttr attaches a key/value pair to the most recently opened tag.
	KindAttr
	// KindText is a run of character data under the innermost open tag.
	KindText
)

// Event is one instruction in the stream. Name and Value are used
// depending on Kind: Start uses Name, Attr uses Name and Value, Text uses
// Value, End uses neither.
type Event struct {
	Kind  Kind
	Name  string
	Value string
}

// Start returns an event opening the named tag.
func Start(name string) Event { return Event{Kind: KindStart, Name: name} }

// End returns an event closing the innermost open tag.
func End() Event { return Event{Kind: KindEnd} }

// Attr returns an event attaching an attribute to the innermost open tag.
func Attr(name, value string) Event { return Event{Kind: KindAttr, Name: name, Value: value} }

// Text returns a character data event.
func Text(value string) Event { return Event{Kind: KindText, Value: value} }

// kind names used in the JSON form.
const (
	jsonStart = "start"
	jsonEnd   = "end"
	jsonAttr  = "attr"
	jsonText  = "text"
)

// eventJSON is the wire form of an event. Omitted fields keep cached
// streams compact; the "t" discriminator is always present.
type eventJSON struct {
	T     string `json:"t"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// MarshalJSON encodes the event as a tagged object, e.g.
// {"t":"start","name":"p"} or {"t":"end"}.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{Name: e.Name, Value: e.Value}
	switch e.Kind {
	case KindStart:
		out.T = jsonStart
	case KindEnd:
		out.T = jsonEnd
	case KindAttr:
		out.T = jsonAttr
	case KindText:
		out.T = jsonText
	default:
		return nil, fmt.Errorf("event: unknown kind %d", e.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tagged object form produced by MarshalJSON.
// Round-trip fidelity matters here: cached documents are stored as JSON
// event streams and composed without access to the original source.
func (e *Event) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.T {
	case jsonStart:
		e.Kind = KindStart
	case jsonEnd:
		e.Kind = KindEnd
	case jsonAttr:
		e.Kind = KindAttr
	case jsonText:
		e.Kind = KindText
	default:
		return fmt.Errorf("event: unknown kind %q", in.T)
	}
	e.Name = in.Name
	e.Value = in.Value
	return nil
}

// String renders a debug form of the event.
func (e Event) String() string {
	switch e.Kind {
	case KindStart:
		return fmt.Sprintf("Start(%q)", e.Name)
	case KindEnd:
		return "End"
	case KindAttr:
		return fmt.Sprintf("Attr(%q, %q)", e.Name, e.Value)
	case KindText:
		return fmt.Sprintf("Text(%q)", e.Value)
	}
	return fmt.Sprintf("Event(%d)", e.Kind)
}

// Balanced reports whether the Start/End events in the sequence form a
// well-formed bracket sequence. The parser guarantees this for its output;
// the composer treats a violation as a programming fault.
func Balanced(events []Event) bool {
	depth := 0
	for _, ev := range events {
		switch ev.Kind {
		case KindStart:
			depth++
		case KindEnd:
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0
}
