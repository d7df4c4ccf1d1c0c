package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/clos/controller"
	"obehod_backend/internals/hodapi"
)

func CLOListRoutes(api fiber.Router, client *hodapi.Client) {
	ctrl := controller.NewCLOListController(client)
	api.Get("/courses/:courseId/clos/page", ctrl.GetPage)
}
