// Package middleware holds in-house HTTP middlewares for the panel API
package middleware

import (
	"net/http"

	pnet "shopsense/internal/platform/net"

	"github.com/google/uuid"
)

// RequestID attaches or propagates X-Request-ID and stores it on context
// Incoming ids are trusted as-is so the panel frontend can correlate retries
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
	})
}
