package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/catalog/controller"
	"obehod_backend/internals/hodapi"
)

func CatalogRoutes(api fiber.Router, client *hodapi.Client) {
	ctrl := controller.NewCatalogController(client)

	prog := api.Group("/programmes")
	prog.Get("/", ctrl.ListProgrammes)
	prog.Post("/", ctrl.CreateProgramme)
	prog.Get("/:id", ctrl.GetProgramme)
	prog.Put("/:id", ctrl.UpdateProgramme)
	prog.Delete("/:id", ctrl.DeleteProgramme)
	api.Get("/program/:id/auto-code", ctrl.AutoCode)

	api.Get("/courses", ctrl.ListCourses)
	api.Post("/courses", ctrl.CreateCourse)
	api.Get("/all-courses", ctrl.AllCourses)
	api.Get("/course/:id", ctrl.GetCourse)
	api.Put("/course/:id", ctrl.UpdateCourse)
	api.Delete("/course/:id", ctrl.DeleteCourse)

	api.Get("/course/:courseId/clos", ctrl.ListCLOs)
	api.Post("/course/:courseId/clo-count", ctrl.ValidateCLOCount)
	api.Post("/course/:courseId/clos/bulk", ctrl.CreateCLOs)
	api.Get("/clo/:id", ctrl.GetCLO)
	api.Delete("/clo/:id", ctrl.DeleteCLO)
}
