package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "obehod_backend/internals/helpers"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(AuthJWT(opts))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(helper.GetUserID(c) + "|" + helper.GetRawAccessToken(c))
	})
	return app
}

func TestAuthJWT(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	numeric := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": float64(42)})
	expired := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "u-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u-1"})

	app := newApp(AuthJWTOpts{Secret: testSecret})

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid bearer", "Bearer " + valid, fiber.StatusOK, "u-1|" + valid},
		{"numeric user id", "bearer " + numeric, fiber.StatusOK, "42|" + numeric},
		{"missing", "", fiber.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized, ""},
		{"wrong key", "Bearer " + wrongKey, fiber.StatusUnauthorized, ""},
		{"garbage", "Bearer abc.def", fiber.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, res.StatusCode)
			if tc.body != "" {
				b, _ := io.ReadAll(res.Body)
				assert.Equal(t, tc.body, string(b))
			}
		})
	}
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": "u-9"})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "access_token="+tok)

	res, err := newApp(AuthJWTOpts{Secret: testSecret}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "access_token="+tok)
	res, err = newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAuthJWT_RequiresSecret(t *testing.T) {
	assert.Panics(t, func() { AuthJWT(AuthJWTOpts{Secret: " "}) })
}
