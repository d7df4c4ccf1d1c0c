package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, dbPing func() error) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("HOD OBE gateway is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "not used"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if dbPing != nil {
			dbStatus = "Connected"
			if err := dbPing(); err != nil {
				dbStatus = "Database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
