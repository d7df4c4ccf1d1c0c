package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/clos/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

type CLOListController struct {
	API *hodapi.Client
}

func NewCLOListController(api *hodapi.Client) *CLOListController {
	return &CLOListController{API: api}
}

// 🟢 GET /api/hod/courses/:courseId/clos/page?q=&bloomLevel=
func (ctrl *CLOListController) GetPage(c *fiber.Ctx) error {
	courseID := strings.TrimSpace(c.Params("courseId"))
	if courseID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}

	bloom := hodapi.BloomLevel(strings.ToUpper(strings.TrimSpace(c.Query("bloomLevel"))))
	if bloom != "" && !bloom.Valid() {
		return helper.JsonValidationError(c, map[string]string{"bloomLevel": "Unknown Bloom's taxonomy level"})
	}

	p := service.NewListPage(ctrl.API, hodapi.ID(courseID))
	defer p.Close()
	p.Load(helper.UpstreamContext(c))
	return helper.JsonOK(c, "CLO list", p.Filter(c.Query("q"), bloom))
}
