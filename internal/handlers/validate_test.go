// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "testing"

func TestDocumentRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      documentRequest
		wantMsg  string
		wantSlug string
	}{
		{
			name:     "complete request passes",
			req:      documentRequest{Slug: "my-doc", Title: "My Doc", Source: "# Hi", Status: "published"},
			wantSlug: "my-doc",
		},
		{
			name:    "missing title rejected",
			req:     documentRequest{Source: "# Hi"},
			wantMsg: "title is required",
		},
		{
			name:    "missing source rejected",
			req:     documentRequest{Title: "My Doc"},
			wantMsg: "source is required",
		},
		{
			name:     "slug derived from title",
			req:      documentRequest{Title: "Hello, World", Source: "body"},
			wantSlug: "hello--world",
		},
		{
			name:    "underivable slug rejected",
			req:     documentRequest{Title: "!!!", Source: "body"},
			wantMsg: "slug could not be derived from title",
		},
		{
			name:    "unknown status rejected",
			req:     documentRequest{Title: "T", Source: "b", Status: "archived"},
			wantMsg: "status must be draft or published",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.req.validate()
			if msg != tt.wantMsg {
				t.Fatalf("validate() = %q, want %q", msg, tt.wantMsg)
			}
			if tt.wantMsg == "" && tt.req.Slug != tt.wantSlug {
				t.Errorf("slug: got %q, want %q", tt.req.Slug, tt.wantSlug)
			}
		})
	}
}

func TestDocumentRequestValidateDefaultsStatus(t *testing.T) {
	req := documentRequest{Title: "Draft By Default", Source: "body"}
	if msg := req.validate(); msg != "" {
		t.Fatalf("validate() = %q, want no error", msg)
	}
	if req.Status != "draft" {
		t.Errorf("status: got %q, want %q", req.Status, "draft")
	}
}
