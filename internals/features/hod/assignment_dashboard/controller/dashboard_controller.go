package controller

import (
	"github.com/gofiber/fiber/v2"

	"obehod_backend/internals/features/hod/assignment_dashboard/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

type DashboardController struct {
	API *hodapi.Client
}

func NewDashboardController(api *hodapi.Client) *DashboardController {
	return &DashboardController{API: api}
}

// 🟢 GET /api/hod/assignments/dashboard?year=&semester=&semesterType=&facultyId=&courseId=&page=&limit=
func (ctrl *DashboardController) Get(c *fiber.Ctx) error {
	var f service.Filters
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid filters")
	}
	if pg := helper.ParsePage(c, helper.DashboardPageOpts); pg.Paged() {
		f.Page, f.Limit = pg.Page, pg.PerPage
	}
	if remove := c.Query("remove"); remove != "" {
		f = f.Without(remove)
	}

	d := service.New(ctrl.API)
	defer d.Close()
	return helper.JsonOK(c, "Assignments dashboard", d.Load(helper.UpstreamContext(c), f))
}
