package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSConfig разрешенные источники и время кэширования preflight
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// CORS middleware на go-chi/cors
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", UserIDHeader, RequestIDHeader, "traceparent"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           cfg.MaxAge,
	})
}
