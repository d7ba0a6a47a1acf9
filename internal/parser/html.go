// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// html.go re-tokenizes raw HTML embedded in Markdown into the same event
// vocabulary the Markdown translator emits. The scan is permissive: stray
// closing tags are dropped with a warning and unclosed tags are closed at
// end of input, so embedded markup can never abort a parse.
package parser

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"mdpress/internal/event"
)

// voidElements never hold children; their start tag closes immediately
// even when written without a trailing slash.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// flushHTML re-tokenizes whatever raw HTML has accumulated. The blob is
// trimmed of outer whitespace so block-level HTML does not produce
// whitespace-only text runs around it; interior whitespace is preserved.
func (t *translator) flushHTML() {
	if t.pendingHTML.Len() == 0 {
		return
	}
	fragment := strings.TrimSpace(t.pendingHTML.String())
	t.pendingHTML.Reset()
	if fragment == "" {
		return
	}
	t.scanHTML(fragment)
}

// scanHTML walks one HTML fragment with the x/net tokenizer. Tag depth is
// tracked on the translator, not locally: an element opened in one raw
// fragment is often closed in a later one.
func (t *translator) scanHTML(fragment string) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				slog.Warn("html tokenize error", "error", err)
			}
			return

		case html.StartTagToken:
			// The tokenizer lower-cases tag names, which would make
			// component tags like <Counter> unresolvable. Recover the
			// original spelling from the raw token bytes.
			name := rawTagName(z.Raw())
			t.push(event.Start(name))
			t.pushTagAttrs(z)
			if voidElements[strings.ToLower(name)] {
				t.push(event.End())
			} else {
				t.htmlDepth++
			}

		case html.SelfClosingTagToken:
			t.push(event.Start(rawTagName(z.Raw())))
			t.pushTagAttrs(z)
			t.push(event.End())

		case html.EndTagToken:
			if t.htmlDepth == 0 {
				name := rawTagName(z.Raw())
				t.report(ProblemStrayCloseTag, "stray closing tag </"+name+">")
				slog.Warn("html tags are not balanced", "tag", name)
				continue
			}
			t.push(event.End())
			t.htmlDepth--

		case html.TextToken:
			t.push(event.Text(string(z.Text())))

		default:
			// Comments and doctypes carry no structure.
		}
	}
}

// pushTagAttrs emits an Attr event for every attribute of the current tag
// token. Keys come back lower-cased from the tokenizer.
func (t *translator) pushTagAttrs(z *html.Tokenizer) {
	_, hasAttr := z.TagName()
	for hasAttr {
		key, val, more := z.TagAttr()
		t.push(event.Attr(string(key), string(val)))
		hasAttr = more
	}
}

// rawTagName extracts the tag name, original case intact, from the raw
// bytes of a start, self-closing, or end tag token.
func rawTagName(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte("<"))
	raw = bytes.TrimPrefix(raw, []byte("/"))
	for i, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r', '/', '>':
			return string(raw[:i])
		}
	}
	return string(raw)
}
