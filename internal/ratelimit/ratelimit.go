// Package ratelimit throttles clients of the weather endpoint with an
// in-process token bucket per key.
package ratelimit

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a key's bucket survives without requests.
const idleTTL = 10 * time.Minute

// DefaultMaxKeys bounds the bucket table when LimiterConfig.MaxKeys is unset.
const DefaultMaxKeys = 10000

type LimiterConfig struct {
	RPS   float64
	Burst int
	// MaxKeys caps how many buckets are tracked at once. When the table is
	// full the least recently seen key is evicted.
	MaxKeys int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	config LimiterConfig
	now    func() time.Time

	mu        sync.Mutex
	buckets   map[string]*entry
	lastSweep time.Time
}

func New(cfg LimiterConfig) *RateLimiter {
	return &RateLimiter{
		config:  cfg,
		now:     time.Now,
		buckets: make(map[string]*entry),
	}
}

// Enabled reports whether the limiter would ever reject a request.
func (rl *RateLimiter) Enabled() bool {
	return rl.config.RPS > 0
}

func (rl *RateLimiter) Middleware(keyFunc func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !rl.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if !rl.Allow(key) {
				slog.Debug("rate limited", "key", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Allow takes one token from key's bucket.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > idleTTL {
		for k, e := range rl.buckets {
			if now.Sub(e.lastSeen) > idleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	e, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= rl.maxKeys() {
			rl.evictLocked(now)
		}
		burst := rl.config.Burst
		if burst < 1 {
			burst = 1
		}
		e = &entry{limiter: rate.NewLimiter(rate.Limit(rl.config.RPS), burst)}
		rl.buckets[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) maxKeys() int {
	if rl.config.MaxKeys > 0 {
		return rl.config.MaxKeys
	}
	return DefaultMaxKeys
}

// evictLocked makes room for one more bucket: idle buckets go first, then the
// least recently seen one.
func (rl *RateLimiter) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, e := range rl.buckets {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(rl.buckets, k)
			continue
		}
		if oldestKey == "" || e.lastSeen.Before(oldest) {
			oldestKey, oldest = k, e.lastSeen
		}
	}
	if len(rl.buckets) >= rl.maxKeys() && oldestKey != "" {
		delete(rl.buckets, oldestKey)
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `","code":` + strconv.Itoa(status) + `}`))
}

// KeyByIP keys on the socket peer address. Forwarding headers are ignored.
func KeyByIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// KeyByClient keys on the socket peer unless that peer is one of the trusted
// proxies, in which case X-Forwarded-For is walked right to left and the
// first address outside the trusted set wins. With no trusted proxies it is
// KeyByIP.
func KeyByClient(trusted []netip.Prefix) func(r *http.Request) string {
	isTrusted := func(a netip.Addr) bool {
		a = a.Unmap()
		for _, p := range trusted {
			if p.Contains(a) {
				return true
			}
		}
		return false
	}
	return func(r *http.Request) string {
		peer := KeyByIP(r)
		addr, err := netip.ParseAddr(peer)
		if err != nil || !isTrusted(addr) {
			return peer
		}
		hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				// A malformed hop cannot be attributed; stop at the last
				// address a trusted proxy vouched for.
				return addr.String()
			}
			if !isTrusted(hop) {
				return hop.Unmap().String()
			}
			addr = hop
		}
		return addr.String()
	}
}

// ParsePrefixes parses CIDRs or bare addresses; a bare address becomes a
// single-host prefix.
func ParsePrefixes(values []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}
