package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/assignments/dto"
	"obehod_backend/internals/features/hod/assignments/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

type AssignmentController struct {
	API *hodapi.Client
}

func NewAssignmentController(api *hodapi.Client) *AssignmentController {
	return &AssignmentController{API: api}
}

func courseParam(c *fiber.Ctx) (hodapi.ID, error) {
	id := strings.TrimSpace(c.Params("courseId"))
	if id == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "courseId is required")
	}
	return hodapi.ID(id), nil
}

// 🟢 GET /api/hod/courses/:courseId/assignments/page?semester=&year=
func (ctrl *AssignmentController) GetPage(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var q dto.TermQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}

	p := service.NewPage(ctrl.API, courseID, q.Semester, q.Year)
	defer p.Close()
	return helper.JsonOK(c, "Assignments page loaded", p.Mount(helper.UpstreamContext(c)))
}

// 🟢 GET /api/hod/courses/:courseId/assignments/available?semester=&year=
func (ctrl *AssignmentController) GetAvailable(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var q dto.TermQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if q.Semester <= 0 || q.Year <= 0 {
		return helper.JsonList(c, "Select a semester and year first", []hodapi.Faculty{}, fiber.Map{"enabled": false})
	}

	res, err := ctrl.API.Assignments.AvailableFaculties(helper.UpstreamContext(c), courseID, q.Semester, q.Year)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch available faculty")
	}
	return helper.JsonList(c, "Available faculty", res.Data, fiber.Map{"enabled": true})
}

// 🟢 POST /api/hod/courses/:courseId/assignments
func (ctrl *AssignmentController) Create(c *fiber.Ctx) error {
	courseID, err := courseParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	p := service.NewPage(ctrl.API, courseID, req.Semester, req.Year)
	defer p.Close()
	v, err := p.Create(helper.UpstreamContext(c), req.ToForm())
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to create assignment")
	}
	return helper.JsonCreated(c, "Assignment created", v)
}

// 🟢 GET /api/hod/courses/:courseId/assignments/:facultyId/:semester/:year/reassign-candidates
func (ctrl *AssignmentController) ReassignCandidates(c *fiber.Ctx) error {
	key, err := dto.KeyFromParams(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}

	p := service.NewPage(ctrl.API, key.CourseID, key.Semester, key.Year)
	defer p.Close()
	v := p.Mount(helper.UpstreamContext(c))
	if v.Error != "" {
		return helper.JsonError(c, fiber.StatusBadGateway, v.Error)
	}
	return helper.JsonOK(c, "Reassignment candidates", p.ReassignCandidates(key))
}

// 🟢 PUT /api/hod/courses/:courseId/assignments/:facultyId/:semester/:year
func (ctrl *AssignmentController) Update(c *fiber.Ctx) error {
	key, err := dto.KeyFromParams(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	ctx := helper.UpstreamContext(c)
	p := service.NewPage(ctrl.API, key.CourseID, key.Semester, key.Year)
	defer p.Close()
	p.Mount(ctx)

	v, err := p.Update(ctx, key, req.ToForm())
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to update assignment")
	}
	return helper.JsonUpdated(c, "Assignment updated", v)
}

// 🟢 DELETE /api/hod/courses/:courseId/assignments/:facultyId/:semester/:year?confirm=true
func (ctrl *AssignmentController) Delete(c *fiber.Ctx) error {
	key, err := dto.KeyFromParams(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	if !c.QueryBool("confirm", false) {
		return helper.JsonError(c, fiber.StatusPreconditionRequired, "Please confirm removing this assignment")
	}

	p := service.NewPage(ctrl.API, key.CourseID, key.Semester, key.Year)
	defer p.Close()
	v, err := p.Delete(helper.UpstreamContext(c), key, true)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to delete assignment")
	}
	return helper.JsonDeleted(c, "Assignment removed", v)
}

// 🟢 GET /api/hod/faculties/:facultyId/workload?year=
func (ctrl *AssignmentController) GetWorkload(c *fiber.Ctx) error {
	facultyID := strings.TrimSpace(c.Params("facultyId"))
	if facultyID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "facultyId is required")
	}
	var q dto.WorkloadQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}

	v, err := service.LoadWorkload(helper.UpstreamContext(c), ctrl.API, hodapi.ID(facultyID), q.Year)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load workload")
	}
	return helper.JsonOK(c, "Faculty workload", v)
}
