package route

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/clo_wizard/controller"
	"obehod_backend/internals/features/hod/clo_wizard/service"
	"obehod_backend/internals/hodapi"
)

// CLOWizardRoutes mounts the wizard endpoints; mw runs before each of them.
func CLOWizardRoutes(api fiber.Router, client *hodapi.Client, svc *service.Service, mw ...fiber.Handler) {
	ctrl := controller.NewCLOWizardController(client, svc)
	with := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, mw...), h)
	}

	api.Post("/courses/:courseId/clo-wizard", with(ctrl.Start)...)
	api.Post("/courses/:courseId/clos/:cloId/edit-wizard", with(ctrl.StartEdit)...)

	wiz := api.Group("/clo-wizard/:id")
	wiz.Get("/", with(ctrl.Get)...)
	wiz.Patch("/form", with(ctrl.SetForm)...)
	wiz.Post("/submit", with(ctrl.Submit)...)
	wiz.Post("/prev", with(ctrl.Prev)...)
	wiz.Post("/goto/:step", with(ctrl.GoTo)...)
	wiz.Delete("/", with(ctrl.Discard)...)
}
