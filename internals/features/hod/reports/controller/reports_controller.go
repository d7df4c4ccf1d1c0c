package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/reports/dto"
	"obehod_backend/internals/features/hod/reports/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

type ReportsController struct {
	API *hodapi.Client
}

func NewReportsController(api *hodapi.Client) *ReportsController {
	return &ReportsController{API: api}
}

// 🟢 GET /api/hod/reports/program-report?programId=
func (ctrl *ReportsController) ProgramReport(c *fiber.Ctx) error {
	var q dto.ProgramReportQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	id := q.ID()
	if id.IsZero() {
		return helper.JsonValidationError(c, map[string]string{"programId": "Please select a programme"})
	}
	res, err := ctrl.API.Reports.ProgramReport(helper.UpstreamContext(c), id)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load programme report")
	}
	return helper.JsonOK(c, "Programme report", res.Data)
}

// 🟢 GET /api/hod/reports/course/:courseId/contributions
func (ctrl *ReportsController) CourseContributions(c *fiber.Ctx) error {
	id := hodapi.ID(strings.TrimSpace(c.Params("courseId")))
	if id.IsZero() {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}
	res, err := ctrl.API.Reports.CourseContributions(helper.UpstreamContext(c), id)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load course contributions")
	}
	return helper.JsonOK(c, "Course contributions", res.Data)
}

// 🟢 GET /api/hod/dashboard/stats
func (ctrl *ReportsController) DashboardStats(c *fiber.Ctx) error {
	res, err := ctrl.API.DashboardStats(helper.UpstreamContext(c))
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load dashboard statistics")
	}
	return helper.JsonOK(c, "Dashboard statistics", res.Data)
}

// 🟢 GET /api/hod/dashboard/overview
func (ctrl *ReportsController) Overview(c *fiber.Ctx) error {
	ov, err := service.LoadOverview(helper.UpstreamContext(c), ctrl.API)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load dashboard statistics")
	}
	return helper.JsonOK(c, "Dashboard overview", ov)
}
