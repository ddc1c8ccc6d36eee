package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bodygraph-backend/pkg/api"
)

// bufferedResponse captures a handler's response so it can be flushed to the
// real ResponseWriter atomically. The handler goroutine owns it exclusively;
// the middleware only reads it after the goroutine has signalled completion.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) { b.status = status }

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	dst := w.Header()
	for k, vs := range b.header {
		dst[k] = vs
	}
	w.WriteHeader(b.status)
	w.Write(b.body.Bytes()) //nolint:errcheck
}

// Timeout bounds request handling. Chart computation fans out to external
// collaborators, so the deadline propagates through the request context and
// cancels their HTTP calls too. The handler runs against a buffered response
// that is only flushed if it finishes in time; a handler that keeps writing
// after the deadline never touches the real connection.
func Timeout(timeout time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)
			buf := newBufferedResponse()
			done := make(chan struct{})
			panicked := false

			go func() {
				defer close(done)
				defer func() {
					if err := recover(); err != nil {
						panicked = true
						logger.Error("panic in timed handler",
							zap.String("request_id", GetRequestIDFromRequest(r)),
							zap.Any("panic", err),
						)
					}
				}()

				next.ServeHTTP(buf, r)
			}()

			select {
			case <-done:
				if panicked {
					api.Error(w, http.StatusInternalServerError, "Internal server error")
					return
				}
				buf.flush(w)
			case <-ctx.Done():
				logger.Warn("request timed out",
					zap.String("request_id", GetRequestIDFromRequest(r)),
					zap.String("path", r.URL.Path),
					zap.Duration("timeout", timeout),
				)
				api.Error(w, http.StatusRequestTimeout, "Request timeout")
			}
		})
	}
}
