package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/outcomes/controller"
	"obehod_backend/internals/hodapi"
)

func OutcomesRoutes(api fiber.Router, client *hodapi.Client) {
	ctrl := controller.NewOutcomesController(client)

	api.Get("/course/:courseId/po-pso", ctrl.ListOutcomes)
	api.Get("/course/:courseId/mapping-matrix", ctrl.GetMatrix)
	api.Post("/course/:courseId/map-clos", ctrl.MapCLOs)
	api.Post("/clo/map", ctrl.SaveMappings)
	api.Get("/clo/mappings/:courseId", ctrl.GetMappings)
}
