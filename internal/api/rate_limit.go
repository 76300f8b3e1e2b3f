package api

import (
	"net/http"

	"golang.org/x/time/rate"

	"webtalk/infrastructure"
)

const KindRateLimited infrastructure.Kind = "RateLimited"

func RateLimitMiddleware(rps int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				infrastructure.WriteStatus(w, http.StatusTooManyRequests, KindRateLimited, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
