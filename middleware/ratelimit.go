package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const staleClientAge = 10 * time.Minute

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a per-client-IP token bucket.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64 // tokens per second
	bucketSize float64
	lastSweep  time.Time
}

// NewRateLimiter allows rate requests per second with bursts up to bucketSize.
func NewRateLimiter(rate, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		bucketSize: bucketSize,
		lastSweep:  time.Now(),
	}
}

// RateLimit returns the gin middleware enforcing the limit.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, exists := rl.buckets[ip]
	if !exists {
		b = &bucket{tokens: rl.bucketSize, lastRefill: now}
		rl.buckets[ip] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.bucketSize {
		b.tokens = rl.bucketSize
	}
	b.lastRefill = now

	if now.Sub(rl.lastSweep) > staleClientAge {
		rl.sweep(now)
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets that have been idle long enough to be full again.
// Caller holds the lock.
func (rl *RateLimiter) sweep(now time.Time) {
	for ip, b := range rl.buckets {
		if now.Sub(b.lastRefill) > staleClientAge {
			delete(rl.buckets, ip)
		}
	}
	rl.lastSweep = now
}
