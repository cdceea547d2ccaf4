package middleware

import (
	"net/http"

	apperrors "regionview/pkg/errors"
)

// MaxRequestSize caps request bodies. Declared oversized bodies are refused
// up front; the rest are cut off by http.MaxBytesReader while decoding.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeAppError(w, apperrors.PayloadTooLarge(limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
