package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID(time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		_, hasDeadline := c.UserContext().Deadline()
		assert.True(t, hasDeadline)
		return c.SendString(c.Locals(LocRequestID).(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-1", res.Header.Get("X-Request-ID"))

	res, err = app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Len(t, res.Header.Get("X-Request-ID"), 36)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RecoveryMiddleware())
	app.Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
}

func TestWizardRateLimiter_SkipsReads(t *testing.T) {
	app := fiber.New()
	app.Use(WizardRateLimiter())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for i := 0; i < 40; i++ {
		res, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNoContent, res.StatusCode)
	}

	var last int
	for i := 0; i < 31; i++ {
		res, err := app.Test(httptest.NewRequest("POST", "/", nil))
		require.NoError(t, err)
		last = res.StatusCode
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last)
}
