package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userRateLimiter applies a per-user token bucket. Feedback generation fans
// out to the model host, so it gets a much tighter budget than ordinary reads.
type userRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*userLimiterEntry
}

type userLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdleEviction = 30 * time.Minute

func newUserRateLimiter(limit rate.Limit, burst int) *userRateLimiter {
	return &userRateLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*userLimiterEntry),
	}
}

// Allow reports whether the user may proceed, creating the bucket on first use.
func (l *userRateLimiter) Allow(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[userID]
	if !ok {
		entry = &userLimiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = entry
	}
	entry.lastSeen = now

	// Opportunistic cleanup keeps the map from growing unbounded.
	for id, e := range l.limiters {
		if now.Sub(e.lastSeen) > limiterIdleEviction {
			delete(l.limiters, id)
		}
	}

	return entry.limiter.Allow()
}

// Middleware rejects requests over the per-user budget with 429. It must run
// after the auth middleware so the user is in the context.
func (l *userRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				unauthorized(w)
				return
			}

			if !l.Allow(user.ID) {
				writeError(w, http.StatusTooManyRequests, "too many feedback requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
