package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/cryptorec/internal/domain/dto"
)

// idleTTL is how long a client's bucket is kept without traffic.
const idleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters keeps one token bucket per client key.
type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*client
	every   rate.Limit
	burst   int
	now     func() time.Time
}

func newClientLimiters(requests int, window time.Duration) *clientLimiters {
	if requests <= 0 {
		requests = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &clientLimiters{
		clients: make(map[string]*client),
		every:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		now:     time.Now,
	}
}

func (l *clientLimiters) allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	cl, ok := l.clients[key]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = cl
		if len(l.clients)%256 == 0 {
			l.evictLocked(now)
		}
	}
	cl.lastSeen = now
	l.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

func (l *clientLimiters) evictLocked(now time.Time) {
	for k, cl := range l.clients {
		if now.Sub(cl.lastSeen) > idleTTL {
			delete(l.clients, k)
		}
	}
}

// RateLimiter limits each client IP to `requests` per `window` using a
// token bucket with a burst of `requests`.
//
// Behavior:
//   - Identifies clients by gin's ClientIP (honours X-Forwarded-For).
//   - Refills tokens continuously at requests/window.
//   - If the bucket is empty, aborts with HTTP 429 Too Many Requests.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(60, time.Minute))
func RateLimiter(requests int, window time.Duration) gin.HandlerFunc {
	limiters := newClientLimiters(requests, window)
	return func(c *gin.Context) {
		if !limiters.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
