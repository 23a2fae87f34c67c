package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"hangul-quiz/internal/domain"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// visitor pairs a client's limiter with its last activity for pruning.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP with a token bucket allowing
// maxRequests per window. Idle clients are pruned lazily.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	expiry    time.Duration
	lastPrune time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter. A non-positive maxRequests disables limiting.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Inf,
		burst:    1,
		expiry:   time.Minute,
		now:      time.Now,
	}
	if maxRequests > 0 && window > 0 {
		rl.limit = rate.Every(window / time.Duration(maxRequests))
		rl.burst = maxRequests
		if e := window * 3; e > rl.expiry {
			rl.expiry = e
		}
	}
	return rl
}

// Allow reports whether the client identified by key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	ok, _ := rl.reserve(key)
	return ok
}

// reserve takes a token for key. When none is available it returns false and
// the wait until the next one.
func (rl *RateLimiter) reserve(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) > rl.expiry {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.expiry {
				delete(rl.visitors, k)
			}
		}
		rl.lastPrune = now
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, rl.expiry
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// retryAfter renders a wait as whole seconds, rounded up, at least 1.
func retryAfter(wait time.Duration) string {
	secs := int64(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}

// Handler returns the fiber middleware.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, wait := rl.reserve(c.IP()); !ok {
			c.Set(fiber.HeaderRetryAfter, retryAfter(wait))
			return domain.NewRateLimitedError()
		}
		return c.Next()
	}
}
