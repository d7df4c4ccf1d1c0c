// helpers/token.go
package helper

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/hodapi"
)

// Raw JWT stored in Locals by the auth middleware
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
)

// GetRawAccessToken returns the caller's access token from:
// 1) Locals("raw_token") set by the middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

func SetRawAccessToken(c *fiber.Ctx, raw string) {
	if strings.TrimSpace(raw) != "" {
		c.Locals(LocRawToken, strings.TrimSpace(raw))
	}
}

// GetUserID returns the user id hydrated by the auth middleware, or "".
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserID).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// UpstreamContext is the context every HOD API call made on behalf of this
// request must use: it carries the request deadline and the caller's token.
func UpstreamContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if tok := GetRawAccessToken(c); tok != "" {
		ctx = hodapi.WithToken(ctx, tok)
	}
	return ctx
}
