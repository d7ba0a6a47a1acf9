// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mdpress/internal/cache"
	"mdpress/internal/models"
	"mdpress/internal/slug"
	"mdpress/internal/store"
)

// Author groups the JSON authoring API: create, update, and delete stored
// documents. Mutations invalidate the parsed-document cache for the
// affected slug so the next public request re-parses fresh source.
type Author struct {
	docStore *store.DocumentStore
	docCache *cache.DocCache
}

// NewAuthor creates a new Author handler group. docCache may be nil.
func NewAuthor(docStore *store.DocumentStore, docCache *cache.DocCache) *Author {
	return &Author{docStore: docStore, docCache: docCache}
}

// documentRequest is the JSON body for create and update calls.
type documentRequest struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Status string `json:"status"`
}

// validate normalizes the request, deriving a slug from the title when
// none was given, and reports the first problem found.
func (req *documentRequest) validate() string {
	if req.Title == "" {
		return "title is required"
	}
	if req.Source == "" {
		return "source is required"
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Title)
	}
	if req.Slug == "" {
		return "slug could not be derived from title"
	}
	switch models.DocStatus(req.Status) {
	case models.DocStatusDraft, models.DocStatusPublished:
	case "":
		req.Status = string(models.DocStatusDraft)
	default:
		return "status must be draft or published"
	}
	return ""
}

// List returns all documents, drafts included.
func (a *Author) List(w http.ResponseWriter, r *http.Request) {
	docs, err := a.docStore.List()
	if err != nil {
		slog.Error("list documents failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Create inserts a new document.
func (a *Author) Create(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	doc, err := a.docStore.Create(req.Slug, req.Title, req.Source, models.DocStatus(req.Status))
	if err != nil {
		slog.Error("create document failed", "slug", req.Slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidate(r, doc.Slug)
	writeJSON(w, http.StatusCreated, doc)
}

// Update replaces an existing document's fields.
func (a *Author) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}

	// Invalidate the old slug too in case the update renames the document.
	if old, err := a.docStore.FindByID(id); err == nil && old != nil {
		a.invalidate(r, old.Slug)
	}

	err = a.docStore.Update(id, req.Slug, req.Title, req.Source, models.DocStatus(req.Status))
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("update document failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidate(r, req.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a document.
func (a *Author) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid document id", http.StatusBadRequest)
		return
	}

	if doc, err := a.docStore.FindByID(id); err == nil && doc != nil {
		a.invalidate(r, doc.Slug)
	}

	if err := a.docStore.Delete(id); err != nil {
		slog.Error("delete document failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Author) invalidate(r *http.Request, slug string) {
	if a.docCache != nil {
		a.docCache.Invalidate(r.Context(), slug)
	}
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
