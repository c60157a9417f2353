package middleware

import (
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Hard cap on tracked clients; the sweeper evicts down to half of it
	maxClients = 8192
	// How often the sweeper runs
	sweepEvery = 2 * time.Minute
	// A client idle this long is forgotten and starts with a fresh burst
	clientTTL = 10 * time.Minute
)

// client is one IP's token bucket plus the time it was last seen.
type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// RateLimiter throttles requests per client IP. Auth routes get a tight
// limiter against credential stuffing; catalog routes get a looser one that
// a normal browsing session never hits.
type RateLimiter struct {
	mu      sync.RWMutex
	clients map[string]*client
	rate    rate.Limit
	burst   int
	stopCh  chan struct{}
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained with
// the given burst, and starts a sweeper that forgets idle clients.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		rate:    rate.Limit(requestsPerSecond),
		burst:   burst,
		stopCh:  make(chan struct{}),
	}

	go rl.sweepLoop()

	return rl
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops clients idle past clientTTL, then evicts the least recently
// seen entries while the map is still over maxClients.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, c := range rl.clients {
		if now.Sub(c.seen) > clientTTL {
			delete(rl.clients, ip)
		}
	}

	if len(rl.clients) <= maxClients {
		return
	}

	ips := make([]string, 0, len(rl.clients))
	for ip := range rl.clients {
		ips = append(ips, ip)
	}
	sort.Slice(ips, func(i, j int) bool {
		return rl.clients[ips[i]].seen.Before(rl.clients[ips[j]].seen)
	})
	for _, ip := range ips[:len(ips)-maxClients/2] {
		delete(rl.clients, ip)
	}
}

// Stop terminates the sweeper goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// limiterFor returns the bucket for an IP, creating it on first sight.
func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.RLock()
	c, ok := rl.clients[ip]
	rl.mu.RUnlock()

	if ok {
		rl.mu.Lock()
		c.seen = time.Now()
		rl.mu.Unlock()
		return c.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Another goroutine may have created it between the locks
	if c, ok = rl.clients[ip]; ok {
		c.seen = time.Now()
		return c.limiter
	}

	c = &client{
		limiter: rate.NewLimiter(rl.rate, rl.burst),
		seen:    time.Now(),
	}
	rl.clients[ip] = c
	return c.limiter
}

// Middleware returns a chi-compatible middleware enforcing the limit.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiterFor(clientIP(r)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys buckets by host, not host:port, so one address shares a
// bucket across connections. RealIP runs earlier in the chain, so behind a
// proxy this is the forwarded address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
