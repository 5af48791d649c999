package middleware

import (
	"net/http"
)

// MaxUploadBodySize bounds every console API request. JSON bodies are capped again by the handlers.
const MaxUploadBodySize = 512 << 20 // 512MB, course and lesson videos

// RequestSizeLimit rejects requests whose declared body exceeds limit and caps the rest
func RequestSizeLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
