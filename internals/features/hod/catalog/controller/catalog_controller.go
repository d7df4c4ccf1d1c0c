package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/catalog/dto"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

// CatalogController forwards programme, course and CLO resource calls.
type CatalogController struct {
	API *hodapi.Client
}

func NewCatalogController(api *hodapi.Client) *CatalogController {
	return &CatalogController{API: api}
}

func idParam(c *fiber.Ctx, name string) (hodapi.ID, error) {
	id := strings.TrimSpace(c.Params(name))
	if id == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	return hodapi.ID(id), nil
}

/* ===================== Programmes ===================== */

// 🟢 GET /api/hod/programmes
func (ctrl *CatalogController) ListProgrammes(c *fiber.Ctx) error {
	res, err := ctrl.API.Programmes.List(helper.UpstreamContext(c))
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch programmes")
	}
	return helper.JsonList(c, "Programmes", res.Data, nil)
}

// 🟢 GET /api/hod/programmes/:id
func (ctrl *CatalogController) GetProgramme(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	res, err := ctrl.API.Programmes.Get(helper.UpstreamContext(c), id)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch programme")
	}
	return helper.JsonOK(c, "Programme", res.Data)
}

// 🟢 POST /api/hod/programmes
func (ctrl *CatalogController) CreateProgramme(c *fiber.Ctx) error {
	var in hodapi.ProgrammeInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in = dto.NormalizeProgramme(in)
	if fields := helper.CheckForm(in, dto.ProgrammeMessages); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	res, err := ctrl.API.Programmes.Create(helper.UpstreamContext(c), in)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to create programme")
	}
	return helper.JsonCreated(c, "Programme created", res.Data)
}

// 🟢 PUT /api/hod/programmes/:id
func (ctrl *CatalogController) UpdateProgramme(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var in hodapi.ProgrammeInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in = dto.NormalizeProgramme(in)
	if fields := helper.CheckForm(in, dto.ProgrammeMessages); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	res, err := ctrl.API.Programmes.Update(helper.UpstreamContext(c), id, in)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to update programme")
	}
	return helper.JsonUpdated(c, "Programme updated", res.Data)
}

// 🟢 DELETE /api/hod/programmes/:id
func (ctrl *CatalogController) DeleteProgramme(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	if _, err := ctrl.API.Programmes.Delete(helper.UpstreamContext(c), id); err != nil {
		return helper.FromUpstreamError(c, err, "Failed to delete programme")
	}
	return helper.JsonDeleted(c, "Programme deleted", fiber.Map{"id": id})
}

/* ===================== Courses ===================== */

// 🟢 GET /api/hod/courses?programmeId=&semester=
func (ctrl *CatalogController) ListCourses(c *fiber.Ctx) error {
	var q dto.CourseQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	res, err := ctrl.API.Courses.List(helper.UpstreamContext(c), q.Filter())
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch courses")
	}
	return helper.JsonList(c, "Courses", res.Data, nil)
}

// 🟢 GET /api/hod/all-courses
func (ctrl *CatalogController) AllCourses(c *fiber.Ctx) error {
	res, err := ctrl.API.Courses.All(helper.UpstreamContext(c))
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch courses")
	}
	return helper.JsonList(c, "Courses", res.Data, nil)
}

// 🟢 GET /api/hod/course/:id
func (ctrl *CatalogController) GetCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	res, err := ctrl.API.Courses.Get(helper.UpstreamContext(c), id)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch course")
	}
	return helper.JsonOK(c, "Course", res.Data)
}

// 🟢 POST /api/hod/courses
func (ctrl *CatalogController) CreateCourse(c *fiber.Ctx) error {
	var in hodapi.CourseInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in = dto.NormalizeCourse(in)
	if fields := helper.CheckForm(in, dto.CourseMessages); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	res, err := ctrl.API.Courses.Create(helper.UpstreamContext(c), in)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to create course")
	}
	return helper.JsonCreated(c, "Course created", res.Data)
}

// 🟢 PUT /api/hod/course/:id
func (ctrl *CatalogController) UpdateCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var in hodapi.CourseInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in = dto.NormalizeCourse(in)
	if fields := helper.CheckForm(in, dto.CourseMessages); fields != nil {
		return helper.JsonValidationError(c, fields)
	}
	res, err := ctrl.API.Courses.Update(helper.UpstreamContext(c), id, in)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to update course")
	}
	return helper.JsonUpdated(c, "Course updated", res.Data)
}

// 🟢 DELETE /api/hod/course/:id
func (ctrl *CatalogController) DeleteCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	if _, err := ctrl.API.Courses.Delete(helper.UpstreamContext(c), id); err != nil {
		return helper.FromUpstreamError(c, err, "Failed to delete course")
	}
	return helper.JsonDeleted(c, "Course deleted", fiber.Map{"id": id})
}

// 🟢 GET /api/hod/program/:id/auto-code
func (ctrl *CatalogController) AutoCode(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	res, err := ctrl.API.Courses.AutoCode(helper.UpstreamContext(c), id)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to generate course code")
	}
	return helper.JsonOK(c, "Course code", res.Data)
}

/* ===================== CLOs ===================== */

// 🟢 GET /api/hod/course/:courseId/clos
func (ctrl *CatalogController) ListCLOs(c *fiber.Ctx) error {
	id, err := idParam(c, "courseId")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	res, err := ctrl.API.CLOs.ListByCourse(helper.UpstreamContext(c), id)
	if hodapi.IsNotFound(err) {
		return helper.JsonList(c, "CLOs", []hodapi.CLO{}, nil)
	}
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch CLOs")
	}
	return helper.JsonList(c, "CLOs", res.Data, nil)
}

// 🟢 GET /api/hod/clo/:id
func (ctrl *CatalogController) GetCLO(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	res, err := ctrl.API.CLOs.Get(helper.UpstreamContext(c), id)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to fetch CLO")
	}
	return helper.JsonOK(c, "CLO", res.Data)
}

// 🟢 DELETE /api/hod/clo/:id
func (ctrl *CatalogController) DeleteCLO(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	if _, err := ctrl.API.CLOs.Delete(helper.UpstreamContext(c), id); err != nil {
		return helper.FromUpstreamError(c, err, "Failed to delete CLO")
	}
	return helper.JsonDeleted(c, "CLO deleted", fiber.Map{"id": id})
}

// 🟢 POST /api/hod/course/:courseId/clo-count
func (ctrl *CatalogController) ValidateCLOCount(c *fiber.Ctx) error {
	id, err := idParam(c, "courseId")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var req dto.CLOCountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Count < 1 {
		return helper.JsonValidationError(c, map[string]string{"count": "Enter how many CLOs to create"})
	}
	res, err := ctrl.API.CLOs.ValidateCount(helper.UpstreamContext(c), id, req.Count)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to validate CLO count")
	}
	return helper.JsonOK(c, "CLO count checked", fiber.Map{
		"allowed":        res.Data.Allowed(),
		"message":        res.Data.Message,
		"existing_count": res.Data.ExistingCount,
	})
}

// 🟢 POST /api/hod/course/:courseId/clos/bulk
func (ctrl *CatalogController) CreateCLOs(c *fiber.Ctx) error {
	id, err := idParam(c, "courseId")
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var req dto.BulkCLORequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	inputs, fields := req.Inputs()
	if fields != nil {
		return helper.JsonValidationError(c, fields)
	}

	created, err := ctrl.API.CLOs.CreateMany(helper.UpstreamContext(c), id, inputs)
	if err != nil {
		var bulk *hodapi.BulkError
		if errors.As(err, &bulk) {
			status := hodapi.StatusOf(bulk.Err)
			if status == 0 {
				status = fiber.StatusBadGateway
			}
			return helper.JsonErrorWithData(c, status,
				hodapi.Message(bulk.Err, "Failed to create CLOs"), nil,
				fiber.Map{"created": created, "failed_index": bulk.Index})
		}
		return helper.FromUpstreamError(c, err, "Failed to create CLOs")
	}
	return helper.JsonCreated(c, "CLOs created", created)
}
