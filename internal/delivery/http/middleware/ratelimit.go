package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/metrics"
)

// Limiter presets applied at the edge.
var (
	GeneralLimit = LimitConfig{
		Name:    "general",
		Limit:   100,
		Window:  15 * time.Minute,
		Message: "Too many requests from this IP, please try again later.",
	}
	FormLimit = LimitConfig{
		Name:    "form",
		Limit:   5,
		Window:  time.Hour,
		Message: "Too many form submissions from this IP, please try again later.",
	}
)

// LimitConfig describes one per-IP budget: Limit requests per Window.
type LimitConfig struct {
	Name    string
	Limit   int
	Window  time.Duration
	Message string
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. The bucket holds Limit tokens and refills
// the whole budget over Window. Idle buckets are swept once they have had time to refill.
type RateLimiter struct {
	cfg  LimitConfig
	skip func(*http.Request) bool
	now  func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter returns a limiter for cfg. Requests for which skip returns true are never counted.
func NewRateLimiter(cfg LimitConfig, skip func(*http.Request) bool) *RateLimiter {
	return &RateLimiter{
		cfg:      cfg,
		skip:     skip,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

func (l *RateLimiter) bucket(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) > l.cfg.Window {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.cfg.Window {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}
	v, ok := l.visitors[ip]
	if !ok {
		every := l.cfg.Window / time.Duration(l.cfg.Limit)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), l.cfg.Limit)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

type rateLimitedResponse struct {
	helpers.APIResponse
	RetryAfter int `json:"retryAfter"`
}

// Handler enforces the budget on next, writing RateLimit-Limit and RateLimit-Remaining on every
// counted response and 429 with Retry-After once the budget is spent.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	retryAfter := int(math.Ceil(l.cfg.Window.Seconds()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.skip != nil && l.skip(r) {
			next.ServeHTTP(w, r)
			return
		}
		lim := l.bucket(ClientIP(r))
		now := l.now()
		allowed := lim.AllowN(now, 1)
		remaining := max(int(lim.TokensAt(now)), 0)

		w.Header().Set("RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			metrics.RecordRateLimited(l.cfg.Name)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			helpers.WriteJSON(w, http.StatusTooManyRequests, rateLimitedResponse{
				APIResponse: helpers.APIResponse{
					Message: l.cfg.Message,
					Error:   &helpers.APIError{Code: helpers.ErrCodeRateLimited, Message: l.cfg.Message},
				},
				RetryAfter: retryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SkipLoopback skips requests from the local machine.
func SkipLoopback(r *http.Request) bool {
	switch ClientIP(r) {
	case "127.0.0.1", "::1", "::ffff:127.0.0.1":
		return true
	}
	return false
}

// SkipAll disables a limiter.
func SkipAll(*http.Request) bool { return true }
