package server

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// limiterGroup hands out one token bucket per remote address, the way
// a public encrypt/decrypt endpoint needs to bound CPU-bound AES-GCM
// and HKDF work per caller.
type limiterGroup struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newLimiterGroup(rps float64, burst int) *limiterGroup {
	return &limiterGroup{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (g *limiterGroup) allow(remote string) bool {
	g.mu.Lock()
	lim, ok := g.limiters[remote]
	if !ok {
		lim = rate.NewLimiter(g.rps, g.burst)
		g.limiters[remote] = lim
	}
	g.mu.Unlock()
	return lim.Allow()
}

// middleware rejects requests over the per-address rate with 429, and
// otherwise delegates to next.
func (g *limiterGroup) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remote, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			remote = r.RemoteAddr
		}
		if !g.allow(remote) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
