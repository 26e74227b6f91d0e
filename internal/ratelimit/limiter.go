package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

// ClientLimiter keeps one token bucket per client. Buckets idle for longer
// than IdleTTL are dropped, so a client seen again starts with a full burst.
type ClientLimiter struct {
	clients   map[string]*client
	mu        sync.Mutex
	config    RateLimitConfig
	now       func() time.Time
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	IdleTTL           time.Duration
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		IdleTTL:           10 * time.Minute,
	}
}

// NewClientLimiter fills unset fields from DefaultConfig.
func NewClientLimiter(config RateLimitConfig) *ClientLimiter {
	defaults := DefaultConfig()
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if config.BurstSize <= 0 {
		config.BurstSize = defaults.BurstSize
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = defaults.IdleTTL
	}
	return &ClientLimiter{
		clients: make(map[string]*client),
		config:  config,
		now:     time.Now,
	}
}

func (p *ClientLimiter) Allow(key string) bool {
	p.mu.Lock()
	now := p.now()
	p.sweep(now)

	c, exists := p.clients[key]
	if !exists {
		c = &client{limiter: rate.NewLimiter(rate.Limit(p.config.RequestsPerSecond), p.config.BurstSize)}
		p.clients[key] = c
	}
	c.lastSeen = now
	p.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Len reports how many clients are tracked.
func (p *ClientLimiter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

// sweep runs at most once per IdleTTL. Callers hold mu.
func (p *ClientLimiter) sweep(now time.Time) {
	if now.Sub(p.lastSweep) < p.config.IdleTTL {
		return
	}
	p.lastSweep = now
	for key, c := range p.clients {
		if now.Sub(c.lastSeen) >= p.config.IdleTTL {
			delete(p.clients, key)
		}
	}
}

// Middleware rejects requests beyond the client's budget with 429. Clients
// are keyed by echo's RealIP.
func Middleware(p *ClientLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many requests, slow down",
					Code:    http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
