// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mdpress/internal/cache"
	"mdpress/internal/compose"
	"mdpress/internal/models"
	"mdpress/internal/parser"
	"mdpress/internal/store"
)

// pageTemplate is the HTML shell around a composed document body.
var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{- if .Outline}}
<nav>
<ul>
{{- range .Outline}}
<li><a href="#{{.ID}}">{{.Text}}</a></li>
{{- end}}
</ul>
</nav>
{{- end}}
<main>
{{.Body}}
</main>
</body>
</html>
`))

// Public groups handlers for the public-facing site. A request parses the
// stored Markdown source into an event stream (or takes it from the Valkey
// cache), composes it against the component registry, and wraps the result
// in the page shell.
type Public struct {
	docStore *store.DocumentStore
	docCache *cache.DocCache
	registry *compose.Registry
	builder  compose.Builder
}

// NewPublic creates a new Public handler group. docCache may be nil when
// Valkey is not configured; rendering then parses on every request.
func NewPublic(docStore *store.DocumentStore, docCache *cache.DocCache, registry *compose.Registry) *Public {
	return &Public{
		docStore: docStore,
		docCache: docCache,
		registry: registry,
		builder:  compose.HTMLBuilder{},
	}
}

// Document renders a published document by slug.
func (p *Public) Document(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	doc, ok := p.parsedDocument(w, r, slug)
	if !ok {
		return
	}

	body, err := compose.Compose(doc.Events, p.registry, p.builder)
	if err != nil {
		// The parser guarantees balanced streams; reaching this means the
		// cached payload or the pipeline itself is broken.
		slog.Error("compose failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	title := doc.Meta.Title
	if title == "" {
		title = slug
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = pageTemplate.Execute(w, struct {
		Title   string
		Outline []parser.Heading
		Body    template.HTML
	}{
		Title:   title,
		Outline: doc.Outline,
		Body:    template.HTML(body.(compose.HTML)),
	})
	if err != nil {
		slog.Error("page template failed", "slug", slug, "error", err)
	}
}

// Outline returns a document's heading outline as JSON.
func (p *Public) Outline(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	doc, ok := p.parsedDocument(w, r, slug)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc.Outline); err != nil {
		slog.Error("outline encode failed", "slug", slug, "error", err)
	}
}

// parsedDocument loads a parsed document by slug, consulting the cache
// first. It writes the error response itself when it returns ok=false.
func (p *Public) parsedDocument(w http.ResponseWriter, r *http.Request, slug string) (*parser.Document[models.DocMeta], bool) {
	ctx := r.Context()

	if p.docCache != nil {
		if doc := p.docCache.Get(ctx, slug); doc != nil {
			return doc, true
		}
	}

	stored, err := p.docStore.FindBySlug(slug)
	if err != nil {
		slog.Error("find document failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	if stored == nil {
		http.NotFound(w, r)
		return nil, false
	}

	doc, err := parser.Parse[models.DocMeta](stored.Source)
	if err != nil {
		slog.Error("parse document failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	for _, prob := range doc.Problems {
		slog.Warn("document parse problem", "slug", slug, "code", prob.Code, "detail", prob.Detail)
	}

	if p.docCache != nil {
		p.docCache.Set(ctx, slug, doc)
	}
	return doc, true
}
