package http

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/peerprep/backend/internal/config"
	apperrors "github.com/peerprep/backend/pkg/util/errorutil"
)

const limiterCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a token bucket per client address.
type RateLimiter struct {
	limit  rate.Limit
	burst  int
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewLoginRateLimiter builds the limiter guarding the login endpoint and
// starts the background cleanup of idle clients.
func NewLoginRateLimiter(cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	perMinute := cfg.LoginPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}
	burst := cfg.LoginBurst
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rl := &RateLimiter{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		logger:  logger,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if !rl.get(ip).Allow() {
			rl.logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Path()))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(rl.retryAfterSeconds()))
			return apperrors.NewTooManyRequests("too many login attempts; try again later")
		}
		return c.Next()
	}
}

// Stop ends the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Clients returns the number of tracked addresses.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastAccess = time.Now()
	return cl.limiter
}

func (rl *RateLimiter) retryAfterSeconds() int {
	seconds := int(math.Ceil(1.0 / float64(rl.limit)))
	if seconds < 1 {
		return 1
	}
	return seconds
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops clients idle for two intervals.
func (rl *RateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.clients {
		if now.Sub(cl.lastAccess) > 2*limiterCleanupInterval {
			delete(rl.clients, key)
		}
	}
}
