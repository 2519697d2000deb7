package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// NewRateLimiter returns a middleware enforcing a per-client-IP token bucket:
// rps sustained requests per second with bursts up to burst. Clients over the
// limit get 429 Too Many Requests.
//
// Wire it after chimiddleware.RealIP so r.RemoteAddr reflects the real client
// behind a proxy. Limiter state is per-process; a multi-instance deployment
// limits per instance.
func NewRateLimiter(rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := visitors[ip]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(rps), burst)
		visitors[ip] = l
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiterFor(r.RemoteAddr).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
