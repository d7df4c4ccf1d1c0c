package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"obehod_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain. requestTimeout should exceed
// the upstream timeout so the gateway can still answer with the upstream error.
func SetupMiddlewares(app *fiber.App, origins []string, requestTimeout time.Duration) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(requestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(origins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter())
}
