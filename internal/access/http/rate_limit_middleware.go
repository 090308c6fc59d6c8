package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/scholarvault/scholarvault/internal/errors"
	"github.com/scholarvault/scholarvault/internal/httputil"
)

// rateLimiterStore holds per-principal rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry keyed by identity
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// RateLimitMiddleware enforces per-principal rate limiting on authenticated
// requests.
//
// MUST be used after AuthenticationMiddleware. Uses a token bucket per
// identity via golang.org/x/time/rate.
//
// Returns:
//   - 429 Too Many Requests: rate limit exceeded (includes Retry-After header)
//   - Continues: request allowed within rate limit
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	// Cleanup goroutine for stale limiters (every 5 minutes)
	go store.cleanupStale(context.Background(), 5*time.Minute)

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			// Should never happen: authentication middleware runs first.
			logger.Error("rate limit middleware: no principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		limiter := store.getLimiter(principal.Identity)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("identity", principal.Identity),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter returns the rate limiter for an identity, creating it on first
// use.
func (s *rateLimiterStore) getLimiter(identity string) *rate.Limiter {
	now := time.Now()

	if entry, ok := s.limiters.Load(identity); ok {
		e := entry.(*rateLimiterEntry)
		e.mu.Lock()
		e.lastAccess = now
		e.mu.Unlock()
		return e.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(identity, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale evicts limiters idle for longer than maxIdle.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-maxIdle)
			s.limiters.Range(func(key, value any) bool {
				e := value.(*rateLimiterEntry)
				e.mu.Lock()
				stale := e.lastAccess.Before(cutoff)
				e.mu.Unlock()
				if stale {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
