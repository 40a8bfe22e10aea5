package middleware

import (
	"net/http"
	"sync"
	"time"

	"pdv/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a fixed window.
type rateEntry struct {
	count     int
	windowEnd time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*rateEntry
	limit     int
	window    time.Duration
	nextPurge time.Time
	now       func() time.Time
}

// RateLimiter returns a per-IP window limiter. limit <= 0 disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{entries: make(map[string]*rateEntry), limit: limit, window: window, now: time.Now}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	ok, retryAt := rl.allow(c.ClientIP())
	if !ok {
		c.Header("Retry-After", retryAt.UTC().Format(http.TimeFormat))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Muitas requisições. Tente novamente em instantes."))
		return
	}
	c.Next()
}

func (rl *rateLimiter) allow(ip string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.purge(now)

	e, exists := rl.entries[ip]
	if !exists || now.After(e.windowEnd) {
		e = &rateEntry{windowEnd: now.Add(rl.window)}
		rl.entries[ip] = e
	}
	e.count++
	return e.count <= rl.limit, e.windowEnd
}

// purge drops expired entries at most once per window so IPs that never
// return do not accumulate.
func (rl *rateLimiter) purge(now time.Time) {
	if now.Before(rl.nextPurge) {
		return
	}
	rl.nextPurge = now.Add(rl.window)
	purged := 0
	for ip, e := range rl.entries {
		if now.After(e.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("entries_purged", purged).Int("entries_remaining", len(rl.entries)).Msg("rate limiter purged")
	}
}
