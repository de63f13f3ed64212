package router

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jbeshir/badge-desk/internal/domain"
)

const requestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds caller-supplied request IDs before they reach the logs.
const maxRequestIDLength = 128

// requestContextMiddleware gives every request an ID and a logger carrying it.
// A caller-supplied X-Request-ID is reused.
func requestContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx).With("request_id", requestID)
		ctx = domain.ContextWithLogger(ctx, logger)
		ctx = domain.ContextWithRequestID(ctx, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type HTTPObserver interface {
	ObserveHTTPRequest(route string, code int, elapsed time.Duration)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observeMiddleware reports each request against its route template, so badge IDs
// do not become label values.
func observeMiddleware(observer HTTPObserver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			observer.ObserveHTTPRequest(route, rec.status, time.Since(start))
		})
	}
}
