// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	wizardService "obehod_backend/internals/features/hod/clo_wizard/service"
	"obehod_backend/internals/hodapi"
	authHod "obehod_backend/internals/middlewares/auth_hod"
	routeDetails "obehod_backend/internals/route/details"
)

var startTime time.Time

type Deps struct {
	Client    *hodapi.Client
	Wizards   *wizardService.Service
	JWTSecret string
	// DBPing reports database health; nil when the wizard store is in memory.
	DBPing func() error
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.DBPing)

	log.Println("[INFO] Setting up HOD group (AuthJWT)...")
	hod := app.Group("/api/hod",
		authHod.AuthJWT(authHod.AuthJWTOpts{
			Secret:              d.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Mounting HOD routes...")
	routeDetails.HodRoutes(hod, d.Client, d.Wizards)
}
