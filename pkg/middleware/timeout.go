package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	apperrors "regionview/pkg/errors"
	"regionview/pkg/logger"
)

// timeoutWriter drops writes made after the deadline fired.
type timeoutWriter struct {
	http.ResponseWriter
	mu         sync.Mutex
	timedOut   bool
	written    bool
	statusCode int
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.written {
		return
	}

	tw.statusCode = code
	tw.written = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}

	if !tw.written {
		tw.statusCode = http.StatusOK
		tw.written = true
	}

	return tw.ResponseWriter.Write(b)
}

func (tw *timeoutWriter) timeout() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.timedOut = true
}

// RequestTimeout bounds the handler. The location lookup runs on a context
// derived from this deadline and gives up early enough for the page to render
// its fallback.
func RequestTimeout(timeout time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			tw := &timeoutWriter{ResponseWriter: w}

			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case p := <-panicked:
				// re-raised on the serving goroutine so Recovery sees it
				panic(p)
			case <-ctx.Done():
				tw.timeout()
				log.Warn("Request timed out",
					"request_id", GetRequestID(r.Context()),
					"path", r.URL.Path,
					"timeout", timeout,
				)
				tw.mu.Lock()
				if !tw.written {
					appErr := apperrors.Timeout("Request timeout")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(appErr.StatusCode())
					_, _ = w.Write(appErr.ToJSON())
					tw.written = true
				}
				tw.mu.Unlock()
			}
		})
	}
}
