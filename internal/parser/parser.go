// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package parser turns a Markdown document, optionally prefixed with a
// YAML front matter block, into a flat stream of structural events plus a
// document outline. The event stream is the unit of caching and transport:
// it serializes to JSON and composes into a view without the source text.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mdpress/internal/event"
)

// frontMatterDelimiter separates the YAML metadata block from the body.
const frontMatterDelimiter = "---"

// ErrMissingFrontMatterDelimiter is returned when an opening front matter
// delimiter is present but the closing one is not.
var ErrMissingFrontMatterDelimiter = errors.New("parser: front matter is missing end delimiter")

// Heading is one outline entry. ID is the collision-resolved anchor slug,
// Text the concatenated heading text, Level the heading depth (1..6).
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Problem records a non-fatal issue recovered during parsing, such as
// unbalanced raw HTML. Problems never abort a parse; they are surfaced so
// callers can inspect or log them.
type Problem struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// Problem codes.
const (
	ProblemStrayCloseTag = "stray_close_tag"
	ProblemUnclosedTags  = "unclosed_tags"
)

// Body is the parsed Markdown body: the heading outline, the event stream,
// and any problems recovered along the way.
type Body struct {
	Outline  []Heading     `json:"outline,omitempty"`
	Events   []event.Event `json:"events"`
	Problems []Problem     `json:"problems,omitempty"`
}

// Document is a fully parsed document: decoded front matter plus body.
// The whole structure round-trips through JSON, which is how parsed
// documents are cached and handed between phases.
type Document[T any] struct {
	Meta T `json:"meta"`
	Body
}

// Parse parses a complete document. If the trimmed input starts with a
// "---" delimiter, everything up to the next "---" is decoded as YAML into
// Meta and the remainder is parsed as Markdown. Without an opening
// delimiter the whole input is body and Meta stays at its zero value.
func Parse[T any](input string) (*Document[T], error) {
	doc := &Document[T]{}
	input = strings.TrimSpace(input)

	if rest, ok := strings.CutPrefix(input, frontMatterDelimiter); ok {
		meta, body, found := strings.Cut(rest, frontMatterDelimiter)
		if !found {
			return nil, ErrMissingFrontMatterDelimiter
		}
		if err := yaml.Unmarshal([]byte(meta), &doc.Meta); err != nil {
			return nil, fmt.Errorf("parser: decode front matter: %w", err)
		}
		doc.Body = *ParseBody(body)
		return doc, nil
	}

	doc.Body = *ParseBody(input)
	return doc, nil
}

// ParseBody parses Markdown body text into a Body. It never fails: markup
// imbalance in embedded raw HTML is repaired and reported as Problems, and
// the resulting event stream is always bracket-balanced.
func ParseBody(body string) *Body {
	t := newTranslator([]byte(body))
	return t.run()
}
