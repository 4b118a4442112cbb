package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"devdesk-server/pkg/response"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware allows requestsPerMinute per client address, with a
// burst of the same size. Preflight requests are not counted. Forwarding
// headers only pick the client when trustProxy is set.
func RateLimitMiddleware(requestsPerMinute int, trustProxy bool) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiters := &sync.Map{}
	limit := rate.Every(time.Minute / time.Duration(requestsPerMinute))

	limiterFor := func(key string) *rate.Limiter {
		if l, ok := limiters.Load(key); ok {
			return l.(*rate.Limiter)
		}
		actual, _ := limiters.LoadOrStore(key, rate.NewLimiter(limit, requestsPerMinute))
		return actual.(*rate.Limiter)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if !limiterFor(clientIP(r, trustProxy)).Allow() {
				w.Header().Set("Retry-After", "60")
				response.TooManyRequests(w, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			return strings.TrimSpace(parts[0])
		}

		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
