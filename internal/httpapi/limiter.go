package httpapi

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// ClientLimiter rate-limits per client host.
type ClientLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

func (cl *ClientLimiter) limiterFor(host string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if lim, ok := cl.m[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[host] = lim
	return lim
}

// Allow reports whether a request from remoteAddr may proceed now.
func (cl *ClientLimiter) Allow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return cl.limiterFor(host).Allow()
}

// Limit rejects requests over the client's budget with 429. A nil limiter passes everything.
func (cl *ClientLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	if cl == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !cl.Allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next(w, r)
	}
}
