package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"rising-bms/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client bucket survives without traffic
// before the sweep drops it.
const limiterIdleTTL = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	clients   map[string]*clientLimiter
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	logger    *zap.Logger
}

func NewRateLimiter(requestsPerSecond, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*clientLimiter),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		lastSweep: time.Now(),
		logger:    logger,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for k, client := range rl.clients {
			if now.Sub(client.lastSeen) > limiterIdleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	client, exists := rl.clients[key]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = now

	return client.limiter
}

// Handler returns the rate limiting middleware.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			key = host
		}

		if !rl.getLimiter(key).Allow() {
			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
			)
			utils.ResponseJSON(w, http.StatusTooManyRequests, false, "Too many requests", nil, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
