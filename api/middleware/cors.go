package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin. The API serves a single-user local frontend, so
// there is no origin allowlist to enforce.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}).Handler
}
