package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/reports/controller"
	"obehod_backend/internals/hodapi"
)

func ReportsRoutes(api fiber.Router, client *hodapi.Client) {
	ctrl := controller.NewReportsController(client)

	rep := api.Group("/reports")
	rep.Get("/program-report", ctrl.ProgramReport)
	rep.Get("/course/:courseId/contributions", ctrl.CourseContributions)

	api.Get("/dashboard/stats", ctrl.DashboardStats)
	api.Get("/dashboard/overview", ctrl.Overview)
}
