// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the HOD web shell origins.
func CorsMiddleware(origins []string) fiber.Handler {
	allowed := strings.Join(origins, ", ")
	return cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowed != "*",
	})
}
