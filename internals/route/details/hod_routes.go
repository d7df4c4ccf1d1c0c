package details

import (
	"github.com/gofiber/fiber/v2"

	dashboardRoute "obehod_backend/internals/features/hod/assignment_dashboard/route"
	assignmentRoute "obehod_backend/internals/features/hod/assignments/route"
	catalogRoute "obehod_backend/internals/features/hod/catalog/route"
	wizardRoute "obehod_backend/internals/features/hod/clo_wizard/route"
	wizardService "obehod_backend/internals/features/hod/clo_wizard/service"
	cloListRoute "obehod_backend/internals/features/hod/clos/route"
	outcomesRoute "obehod_backend/internals/features/hod/outcomes/route"
	reportsRoute "obehod_backend/internals/features/hod/reports/route"
	"obehod_backend/internals/hodapi"
	"obehod_backend/internals/middlewares"
)

// HodRoutes mounts every HOD page and pass-through on an authenticated group.
// Page routes go first so /courses/:courseId/... wins over the catalog's
// /courses listing.
func HodRoutes(api fiber.Router, client *hodapi.Client, wizards *wizardService.Service) {
	assignmentRoute.AssignmentRoutes(api, client)
	dashboardRoute.DashboardRoutes(api, client)
	cloListRoute.CLOListRoutes(api, client)

	wizardRoute.CLOWizardRoutes(api, client, wizards, middlewares.WizardRateLimiter())

	catalogRoute.CatalogRoutes(api, client)
	outcomesRoute.OutcomesRoutes(api, client)
	reportsRoute.ReportsRoutes(api, client)
}
