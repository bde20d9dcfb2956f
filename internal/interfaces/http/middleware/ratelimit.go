package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter. Each key gets a
// bucket of tokens that refills when its window elapses. Stale buckets
// are swept in the background so idle clients do not pin memory.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	tokens  int
	resetAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.sweep()
	return rl
}

// sweep drops buckets that have been idle for two full windows.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-2 * rl.window)
		for key, b := range rl.buckets {
			if b.resetAt.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow consumes a token for key, refilling the bucket first when its
// window has elapsed. Returns false when the bucket is empty.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.resetAt) >= rl.window {
		rl.buckets[key] = &bucket{tokens: rl.limit - 1, resetAt: now}
		return true
	}
	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Remaining reports the tokens left for key without consuming one.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || time.Since(b.resetAt) >= rl.window {
		return rl.limit
	}
	return b.tokens
}

func rejectRateLimited(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

func setRateLimitHeaders(c *gin.Context, limiter *RateLimiter, key string) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
}

// RateLimit throttles all requests per client IP.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(key) {
			rejectRateLimited(c, "RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later.")
			return
		}
		setRateLimitHeaders(c, limiter, key)
		c.Next()
	}
}

// RateLimitByKey throttles with a caller-supplied key extractor, for
// limits keyed on something other than the client IP.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(keyFunc(c)) {
			rejectRateLimited(c, "RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}

// WriteRateLimit is the stricter limiter for mutation endpoints such as
// recalibration submissions. The key is prefixed so the same limiter
// instance never shares buckets with the global read limiter.
func WriteRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "write:" + c.ClientIP()
		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			rejectRateLimited(c, "WRITE_RATE_LIMIT_EXCEEDED", "Too many submissions. Please try again later.")
			return
		}
		setRateLimitHeaders(c, limiter, key)
		c.Next()
	}
}
