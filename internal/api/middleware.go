package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"webtalk/infrastructure"
	"webtalk/internal/policy"
)

// ActorHeader carries the id of the acting user, if the caller supplies one.
const ActorHeader = "X-User-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				zap.Duration("latency", time.Since(t)),
				zap.Int("status", rec.status),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
		})
	}
}

// Recoverer turns a panic escaping a handler into an UnexpectedError response.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("panic in handler", zap.Any("panic", p), zap.String("path", r.URL.Path))
					infrastructure.WriteFailure(w, infrastructure.Unexpected(fmt.Errorf("%v", p)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutMiddleware bounds every request context by d.
func TimeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(ActorHeader); id != "" {
			r = r.WithContext(policy.WithActor(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
