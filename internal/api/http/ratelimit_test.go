package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peerprep/backend/internal/config"
)

func TestRateLimiter_RetryAfterAndCleanup(t *testing.T) {
	rl := NewLoginRateLimiter(config.RateLimitConfig{LoginPerMinute: 2, LoginBurst: 1}, nil)
	defer rl.Stop()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	app.Post("/login", rl.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get(fiber.HeaderRetryAfter))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"code":"RATE_LIMITED"`)

	assert.Equal(t, 1, rl.Clients())
	rl.cleanup(time.Now().Add(3 * limiterCleanupInterval))
	assert.Zero(t, rl.Clients())
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewLoginRateLimiter(config.RateLimitConfig{}, nil)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
