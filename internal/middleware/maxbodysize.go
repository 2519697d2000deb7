package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// body sizes to limit bytes. Requests advertising a larger Content-Length are
// rejected with 413 before the handler runs; streaming bodies without a
// Content-Length are wrapped in http.MaxBytesReader so the handler's body
// read fails once the limit is crossed.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge),
					http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
