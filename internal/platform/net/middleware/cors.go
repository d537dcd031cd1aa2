package middleware

import (
	"net/http"

	pstrings "shopsense/internal/platform/strings"

	chicors "github.com/go-chi/cors"
)

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS wraps go-chi/cors with defaults suited to the local panel frontend
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		MaxAge:         o.MaxAge,
	})
}
