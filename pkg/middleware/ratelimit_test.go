package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func doRateLimited(t *testing.T, rl *RateLimiter, remoteAddr string) int {
	t.Helper()

	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BurstExceeded(t *testing.T) {
	rl := NewRateLimiter(1, 2, zap.NewNop())

	assert.Equal(t, http.StatusOK, doRateLimited(t, rl, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRateLimited(t, rl, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRateLimited(t, rl, "10.0.0.1:1234"))
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(1, 1, zap.NewNop())

	assert.Equal(t, http.StatusOK, doRateLimited(t, rl, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRateLimited(t, rl, "10.0.0.1:5678"))

	// A different IP gets its own bucket
	assert.Equal(t, http.StatusOK, doRateLimited(t, rl, "10.0.0.2:1234"))
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1, zap.NewNop())

	assert.Equal(t, http.StatusOK, doRateLimited(t, rl, "10.0.0.1:1234"))
	require.Len(t, rl.clients, 1)

	// Age the entry and the sweep clock past the idle TTL
	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * limiterIdleTTL)
	rl.lastSweep = time.Now().Add(-2 * limiterIdleTTL)
	rl.mu.Unlock()

	assert.Equal(t, http.StatusOK, doRateLimited(t, rl, "10.0.0.2:1234"))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.clients, 1)
	assert.NotContains(t, rl.clients, "10.0.0.1")
}
