package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/outcomes/dto"
	"obehod_backend/internals/features/hod/outcomes/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

type OutcomesController struct {
	API *hodapi.Client
}

func NewOutcomesController(api *hodapi.Client) *OutcomesController {
	return &OutcomesController{API: api}
}

func courseParam(c *fiber.Ctx) (hodapi.ID, bool) {
	id := hodapi.ID(strings.TrimSpace(c.Params("courseId")))
	return id, !id.IsZero()
}

// 🟢 GET /api/hod/course/:courseId/po-pso
func (ctrl *OutcomesController) ListOutcomes(c *fiber.Ctx) error {
	courseID, ok := courseParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}
	res, err := ctrl.API.POPSO.ForCourse(helper.UpstreamContext(c), courseID)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch POs and PSOs")
	}
	return helper.JsonOK(c, "POs and PSOs", res.Data)
}

// 🟢 GET /api/hod/course/:courseId/mapping-matrix
func (ctrl *OutcomesController) GetMatrix(c *fiber.Ctx) error {
	courseID, ok := courseParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}
	m, err := service.LoadMatrix(helper.UpstreamContext(c), ctrl.API, courseID)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load CLO mappings")
	}
	return helper.JsonOK(c, "CLO mapping matrix", m)
}

// 🟢 POST /api/hod/course/:courseId/map-clos
func (ctrl *OutcomesController) MapCLOs(c *fiber.Ctx) error {
	courseID, ok := courseParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}
	var req dto.SaveMappingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	mappings, fields := service.CheckMappings(req.ToMappings())
	if fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	if _, err := ctrl.API.POPSO.MapCLOs(helper.UpstreamContext(c), courseID, mappings); err != nil {
		return helper.FromUpstreamError(c, err, "Failed to save CLO mappings")
	}
	return helper.JsonUpdated(c, "CLO mappings saved", fiber.Map{"course_id": courseID, "saved": len(mappings)})
}

// 🟢 POST /api/hod/clo/map
func (ctrl *OutcomesController) SaveMappings(c *fiber.Ctx) error {
	var req dto.SaveMappingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	mappings, fields := service.CheckMappings(req.ToMappings())
	if fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	body := hodapi.MappingRequest{CourseID: req.CourseID, Mappings: mappings}
	if _, err := ctrl.API.CLOs.SaveMappings(helper.UpstreamContext(c), body); err != nil {
		return helper.FromUpstreamError(c, err, "Failed to save CLO mappings")
	}
	return helper.JsonUpdated(c, "CLO mappings saved", fiber.Map{"saved": len(mappings)})
}

// 🟢 GET /api/hod/clo/mappings/:courseId
func (ctrl *OutcomesController) GetMappings(c *fiber.Ctx) error {
	courseID, ok := courseParam(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}
	res, err := ctrl.API.CLOs.Mappings(helper.UpstreamContext(c), courseID)
	if hodapi.IsNotFound(err) {
		return helper.JsonList(c, "CLO mappings", []hodapi.CLOMapping{}, nil)
	}
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch CLO mappings")
	}
	return helper.JsonList(c, "CLO mappings", res.Data, nil)
}
