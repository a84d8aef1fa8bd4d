package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/apierror"

	"github.com/gin-gonic/gin"
)

// ── Login rate limiter ────────────────────────────────────────────────────────

// ipEntry tracks attempts per IP within a sliding window.
type ipEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	ipMap   = make(map[string]*ipEntry)
	ipMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
// The reopen endpoint reuses it — the reopen password must not be brute-forceable.
func LoginRateLimiter() gin.HandlerFunc {
	return rateLimit(ipMap, &ipMapMu, 20, time.Minute)
}

// ── General API rate limiter ─────────────────────────────────────────────────

var (
	apiRateMap   = make(map[string]*ipEntry)
	apiRateMapMu sync.Mutex
)

// RateLimiter limits requests per IP within the given window.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return rateLimit(apiRateMap, &apiRateMapMu, limit, window)
}

func rateLimit(entries map[string]*ipEntry, mapMu *sync.Mutex, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		mapMu.Lock()
		entry, exists := entries[ip]
		if !exists {
			entry = &ipEntry{}
			entries[ip] = entry
		}
		mapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			// Reset sliding window
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests. Try again in a moment."))
			return
		}
		c.Next()
	}
}
