package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// AllowAll lets any origin call the API, including preflighted PUT/PATCH/DELETE with a
// bearer token.
func AllowAll() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
