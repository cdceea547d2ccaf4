package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "regionview/pkg/errors"
	"regionview/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", GetRequestID(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					appErr := apperrors.Internal("Internal server error", fmt.Errorf("panic: %v", err))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(appErr.StatusCode())
					_, _ = w.Write(appErr.ToJSON())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
