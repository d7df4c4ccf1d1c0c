package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/assignment_dashboard/controller"
	"obehod_backend/internals/hodapi"
)

func DashboardRoutes(api fiber.Router, client *hodapi.Client) {
	ctrl := controller.NewDashboardController(client)
	api.Get("/assignments/dashboard", ctrl.Get)
}
