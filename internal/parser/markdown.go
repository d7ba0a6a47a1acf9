// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// markdown.go translates the goldmark AST into the flat event vocabulary.
// Markdown structure maps to plain HTML tags; raw HTML nodes are buffered
// and re-tokenized separately (see html.go) so that tags split across
// adjacent raw-HTML tokens still parse as one fragment.
package parser

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"mdpress/internal/event"
	"mdpress/internal/slug"
)

// md is the configured goldmark instance, reused across parses. GFM brings
// tables, strikethrough, task lists, and autolinks; Footnote adds footnote
// references and definitions.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
	),
)

// translator walks the Markdown AST for one document and accumulates the
// event stream, the heading outline, and recovered problems. One
// translator is scoped to a single parse; it holds the slug table and the
// footnote ordinal map for that document only.
type translator struct {
	source   []byte
	events   []event.Event
	outline  []Heading
	problems []Problem

	slugger  *slug.Slugger
	ordinals map[int]int // goldmark footnote index -> first-appearance ordinal

	// pendingHTML collects consecutive raw-HTML tokens so they re-tokenize
	// as one blob. htmlDepth counts tags opened by raw HTML and persists
	// across flushes, since open and close tags may arrive in separate
	// Markdown tokens.
	pendingHTML bytes.Buffer
	htmlDepth   int

	// Heading text accumulates between a heading's start and end so the
	// slugger sees the full text, not partial fragments.
	inHeading   bool
	headingText strings.Builder
}

func newTranslator(source []byte) *translator {
	return &translator{
		source:   source,
		slugger:  slug.NewSlugger(),
		ordinals: make(map[int]int),
	}
}

// run parses the source and drives the AST walk. Whatever raw HTML is
// still pending at the end is flushed, and any unclosed raw-HTML tags are
// force-closed so the output is always bracket-balanced.
func (t *translator) run() *Body {
	root := md.Parser().Parse(text.NewReader(t.source))
	_ = ast.Walk(root, t.visit)

	t.flushHTML()
	if t.htmlDepth > 0 {
		t.report(ProblemUnclosedTags, strconv.Itoa(t.htmlDepth)+" unclosed html tag(s) at end of input")
		slog.Warn("html tags are not balanced", "unclosed", t.htmlDepth)
		for t.htmlDepth > 0 {
			t.push(event.End())
			t.htmlDepth--
		}
	}

	return &Body{Outline: t.outline, Events: t.events, Problems: t.problems}
}

// emit flushes pending raw HTML and appends one event. All Markdown-driven
// events go through here so raw HTML is always re-tokenized before the
// next structural instruction.
func (t *translator) emit(ev event.Event) {
	t.flushHTML()
	t.push(ev)
}

// push appends an event without flushing. Consecutive text events merge
// into one run; heading text is accumulated for the slugger.
func (t *translator) push(ev event.Event) {
	if ev.Kind == event.KindText {
		if t.inHeading {
			t.headingText.WriteString(ev.Value)
		}
		if n := len(t.events); n > 0 && t.events[n-1].Kind == event.KindText {
			t.events[n-1].Value += ev.Value
			return
		}
	}
	t.events = append(t.events, ev)
}

func (t *translator) report(code, detail string) {
	t.problems = append(t.problems, Problem{Code: code, Detail: detail})
}

func (t *translator) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Document, *ast.TextBlock:
		// Containers with no tag of their own.

	case *ast.Heading:
		if entering {
			t.emit(event.Start("h" + strconv.Itoa(n.Level)))
			t.inHeading = true
			t.headingText.Reset()
		} else {
			t.flushHTML()
			t.inHeading = false
			txt := t.headingText.String()
			id := t.slugger.Slugify(txt)
			t.push(event.Attr("id", id))
			t.push(event.End())
			t.outline = append(t.outline, Heading{ID: id, Text: txt, Level: n.Level})
		}

	case *ast.Paragraph:
		t.tag("p", entering)

	case *ast.Blockquote:
		t.tag("blockquote", entering)

	case *ast.FencedCodeBlock:
		if entering {
			t.emit(event.Start("pre"))
			t.push(event.Start("code"))
			if lang := n.Language(t.source); len(lang) > 0 {
				t.push(event.Attr("class", "language-"+string(lang)))
			}
			t.push(event.Text(t.blockLines(n.Lines())))
		} else {
			t.push(event.End())
			t.push(event.End())
		}

	case *ast.CodeBlock:
		if entering {
			t.emit(event.Start("pre"))
			t.push(event.Start("code"))
			t.push(event.Text(t.blockLines(n.Lines())))
		} else {
			t.push(event.End())
			t.push(event.End())
		}

	case *ast.List:
		name := "ul"
		if n.IsOrdered() {
			name = "ol"
		}
		if entering {
			t.emit(event.Start(name))
			if n.IsOrdered() && n.Start != 1 {
				t.push(event.Attr("start", strconv.Itoa(n.Start)))
			}
		} else {
			t.emit(event.End())
		}

	case *ast.ListItem:
		t.tag("li", entering)

	case *ast.ThematicBreak:
		if entering {
			t.emit(event.Start("hr"))
			t.push(event.End())
		}

	case *ast.Emphasis:
		name := "em"
		if n.Level == 2 {
			name = "strong"
		}
		t.tag(name, entering)

	case *east.Strikethrough:
		t.tag("del", entering)

	case *ast.Link:
		if entering {
			t.emit(event.Start("a"))
			t.push(event.Attr("href", string(n.Destination)))
			if len(n.Title) > 0 {
				t.push(event.Attr("title", string(n.Title)))
			}
		} else {
			t.emit(event.End())
		}

	case *ast.AutoLink:
		if entering {
			url := string(n.URL(t.source))
			label := string(n.Label(t.source))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
				url = "mailto:" + url
			}
			t.emit(event.Start("a"))
			t.push(event.Attr("href", url))
			t.push(event.Text(label))
			t.push(event.End())
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		if entering {
			t.emit(event.Start("img"))
			t.push(event.Attr("src", string(n.Destination)))
			if alt := nodeText(n, t.source); alt != "" {
				t.push(event.Attr("alt", alt))
			}
			if len(n.Title) > 0 {
				t.push(event.Attr("title", string(n.Title)))
			}
			t.push(event.End())
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeSpan:
		t.tag("code", entering)

	case *ast.Text:
		if entering {
			t.emit(event.Text(string(n.Segment.Value(t.source))))
			if n.HardLineBreak() {
				t.push(event.Start("br"))
				t.push(event.End())
			} else if n.SoftLineBreak() {
				t.push(event.Text("\n"))
			}
		}

	case *ast.String:
		if entering {
			t.emit(event.Text(string(n.Value)))
		}

	case *ast.RawHTML:
		if entering {
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				t.pendingHTML.Write(seg.Value(t.source))
			}
		}
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock:
		if entering {
			for i := 0; i < n.Lines().Len(); i++ {
				seg := n.Lines().At(i)
				t.pendingHTML.Write(seg.Value(t.source))
			}
			if n.HasClosure() {
				t.pendingHTML.Write(n.ClosureLine.Value(t.source))
			}
		}
		return ast.WalkSkipChildren, nil

	case *east.Table:
		t.tag("table", entering)

	case *east.TableHeader:
		// Header styling is deferred; the header row still nests in thead.
		if entering {
			t.emit(event.Start("thead"))
			t.push(event.Start("tr"))
		} else {
			t.emit(event.End())
			t.push(event.End())
		}

	case *east.TableRow:
		t.tag("tr", entering)

	case *east.TableCell:
		t.tag("td", entering)

	case *east.TaskCheckBox:
		if entering {
			t.emit(event.Start("input"))
			t.push(event.Attr("type", "checkbox"))
			if n.IsChecked {
				t.push(event.Attr("checked", ""))
			}
			t.push(event.Attr("disabled", ""))
			t.push(event.End())
		}

	case *east.FootnoteLink:
		if entering {
			ord := t.footnoteOrdinal(n.Index)
			t.emit(event.Start("sup"))
			t.push(event.Attr("class", "footnote-reference"))
			t.push(event.Start("a"))
			t.push(event.Attr("href", "#fn-"+ord))
			t.push(event.Text(ord))
			t.push(event.End())
			t.push(event.End())
		}
		return ast.WalkSkipChildren, nil

	case *east.FootnoteBacklink:
		return ast.WalkSkipChildren, nil

	case *east.FootnoteList:
		// Definitions render as standalone labeled blocks, no list wrapper.

	case *east.Footnote:
		if entering {
			ord := t.footnoteOrdinal(n.Index)
			t.emit(event.Start("div"))
			t.push(event.Attr("class", "footnote-definition"))
			t.push(event.Attr("id", "fn-"+ord))
			t.push(event.Start("sup"))
			t.push(event.Attr("class", "footnote-definition-label"))
			t.push(event.Text(ord))
			t.push(event.End())
		} else {
			t.emit(event.End())
		}
	}

	return ast.WalkContinue, nil
}

// tag emits a plain start/end pair for a node with no attributes.
func (t *translator) tag(name string, entering bool) {
	if entering {
		t.emit(event.Start(name))
	} else {
		t.emit(event.End())
	}
}

// blockLines joins the source lines of a code block.
func (t *translator) blockLines(lines *text.Segments) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(t.source))
	}
	return b.String()
}

// footnoteOrdinal returns the 1-based ordinal for a footnote, assigned in
// first-appearance order. References and their definition share one ordinal.
func (t *translator) footnoteOrdinal(index int) string {
	ord, ok := t.ordinals[index]
	if !ok {
		ord = len(t.ordinals) + 1
		t.ordinals[index] = ord
	}
	return strconv.Itoa(ord)
}

// nodeText concatenates the plain text beneath a node. Used for image alt
// text, where markup children collapse into a single attribute value.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
