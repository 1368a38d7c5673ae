package middleware

import (
	"errors"
	"mecanica_hub/pkg"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("rate limit exceeded")

var errTooManyRequests = pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests)

// idleTTL is how long a key may stay silent before its bucket is dropped.
const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key. A non-positive rps disables it.
// Buckets idle for longer than idleTTL are swept on the next call after
// idleTTL has passed.
type RateLimiter struct {
	rps   float64
	burst int
	now   func() time.Time

	mu        sync.Mutex
	local     map[string]*visitor
	lastSweep time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = int(rps * 2)
		if burst < 1 {
			burst = 1
		}
	}
	return &RateLimiter{rps: rps, burst: burst, now: time.Now, local: make(map[string]*visitor)}
}

func (l *RateLimiter) Allow(key string) error {
	if l.rps <= 0 || key == "" {
		return nil
	}

	now := l.now()
	l.mu.Lock()
	if now.Sub(l.lastSweep) >= idleTTL {
		l.sweep(now)
	}
	v := l.local[key]
	if v == nil {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.local[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	if !v.limiter.AllowN(now, 1) {
		return ErrRateLimited
	}
	return nil
}

// sweep drops idle buckets. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	for key, v := range l.local {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(l.local, key)
		}
	}
	l.lastSweep = now
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.local)
}

// RateLimit throttles by client IP.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := l.Allow(c.ClientIP()); err != nil {
			c.AbortWithStatusJSON(errTooManyRequests.HTTPStatus, errTooManyRequests.ToHTTPError())
			return
		}
		c.Next()
	}
}
