// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly anchor identifiers for headings.
// Generate normalizes arbitrary text into a base slug; Slugger additionally
// resolves collisions so every heading in a document gets a unique id.
package slug

import (
	"strconv"
	"strings"
)

// Generate creates a URL-friendly slug from the given string. Every
// character that is not an ASCII letter or digit becomes a hyphen, letters
// are lower-cased, and leading/trailing hyphens are trimmed.
// Example: "Hello World!" → "hello-world"
func Generate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// Slugger hands out unique ids within one document. The first heading that
// normalizes to base slug "s" gets "s", the n-th gets "s-n". A Slugger is
// scoped to a single parse and is not safe for concurrent use.
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slugify normalizes text and returns a document-unique id for it.
func (s *Slugger) Slugify(text string) string {
	base := Generate(text)
	n := s.seen[base] + 1
	s.seen[base] = n
	if n == 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
