package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/hodapi"
)

// FromUpstreamError writes the JSON error for a failed page or pass-through
// call: field errors → 422, backend errors keep their status and message,
// requests that never got an answer → 502/504.
func FromUpstreamError(c *fiber.Ctx, err error, fallback string) error {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return JsonValidationError(c, fields)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	if status := hodapi.StatusOf(err); status != 0 {
		return JsonError(c, status, hodapi.Message(err, fallback))
	}

	log.Printf("[UPSTREAM] %s %s: %v", c.Method(), c.OriginalURL(), err)
	if hodapi.IsTimeout(err) {
		return JsonError(c, fiber.StatusGatewayTimeout, fallback)
	}
	return JsonError(c, fiber.StatusBadGateway, fallback)
}
