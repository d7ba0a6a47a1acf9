package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// ---------- RequestID ----------

func TestRequestID(t *testing.T) {
	t.Run("generates an id when none supplied", func(t *testing.T) {
		var gotID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = RequestIDFrom(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if gotID == "" {
			t.Fatal("expected a request id in the context")
		}
		if _, err := uuid.Parse(gotID); err != nil {
			t.Errorf("generated id %q is not a UUID: %v", gotID, err)
		}
		if header := rr.Header().Get("X-Request-ID"); header != gotID {
			t.Errorf("response header %q does not match context id %q", header, gotID)
		}
	})

	t.Run("preserves a caller-supplied id", func(t *testing.T) {
		var gotID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = RequestIDFrom(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if gotID != "upstream-id" {
			t.Errorf("context id: got %q, want %q", gotID, "upstream-id")
		}
		if header := rr.Header().Get("X-Request-ID"); header != "upstream-id" {
			t.Errorf("response header: got %q, want %q", header, "upstream-id")
		}
	})
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	if id := RequestIDFrom(context.Background()); id != "" {
		t.Errorf("expected empty id without middleware, got %q", id)
	}
}
