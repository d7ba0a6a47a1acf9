// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// RequireAuthorKey guards the authoring endpoints with a bearer API key
// checked against a bcrypt hash from configuration. An empty hash disables
// authoring entirely; the endpoints then always answer 403.
func RequireAuthorKey(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				http.Error(w, "authoring is disabled", http.StatusForbidden)
				return
			}

			auth := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "missing author key", http.StatusUnauthorized)
				return
			}

			key := auth[len(prefix):]
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				slog.Warn("author key rejected",
					"request_id", RequestIDFrom(r.Context()),
					"remote", r.RemoteAddr,
				)
				http.Error(w, "invalid author key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
