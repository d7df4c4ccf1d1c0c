package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/assignments/controller"
	"obehod_backend/internals/hodapi"
)

// AssignmentRoutes mounts the per-course assignment page and the workload
// view. api is the authenticated /api/hod group.
func AssignmentRoutes(api fiber.Router, client *hodapi.Client) {
	ctrl := controller.NewAssignmentController(client)

	course := api.Group("/courses/:courseId/assignments")
	course.Get("/page", ctrl.GetPage)
	course.Get("/available", ctrl.GetAvailable)
	course.Post("/", ctrl.Create)
	course.Get("/:facultyId/:semester/:year/reassign-candidates", ctrl.ReassignCandidates)
	course.Put("/:facultyId/:semester/:year", ctrl.Update)
	course.Delete("/:facultyId/:semester/:year", ctrl.Delete)

	api.Get("/faculties/:facultyId/workload", ctrl.GetWorkload)
}
