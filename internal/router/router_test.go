// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"mdpress/internal/compose"
	"mdpress/internal/handlers"
)

// testRouter builds a router with handlers that have no database behind
// them. Routes that reach the store are not exercised here; these tests
// cover routing, the health endpoint, and the authoring guard.
func testRouter(t *testing.T, authorKeyHash string) http.Handler {
	t.Helper()
	public := handlers.NewPublic(nil, nil, compose.NewRegistry())
	author := handlers.NewAuthor(nil, nil)
	return New(public, author, authorKeyHash)
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("body: got %q, want %q", w.Body.String(), "ok")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header from middleware")
	}
}

func TestAuthoringRoutesGuarded(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("author-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}
	r := testRouter(t, string(hash))

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/author/documents/"},
		{"POST", "/author/documents/"},
		{"PUT", "/author/documents/123"},
		{"DELETE", "/author/documents/123"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))

			if w.Code != http.StatusUnauthorized {
				t.Errorf("without key: got %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthoringDisabledWithoutKeyHash(t *testing.T) {
	r := testRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/author/documents/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", w.Code)
	}
}

func TestAuthoringBadDocumentID(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("author-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}
	r := testRouter(t, string(hash))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/author/documents/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer author-key")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}
