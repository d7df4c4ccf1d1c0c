package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"obehod_backend/internals/features/hod/clo_wizard/dto"
	"obehod_backend/internals/features/hod/clo_wizard/service"
	closService "obehod_backend/internals/features/hod/clos/service"
	helper "obehod_backend/internals/helpers"
	"obehod_backend/internals/hodapi"
)

type CLOWizardController struct {
	API     *hodapi.Client
	Service *service.Service
}

func NewCLOWizardController(api *hodapi.Client, svc *service.Service) *CLOWizardController {
	return &CLOWizardController{API: api, Service: svc}
}

func owner(c *fiber.Ctx) (string, error) {
	if uid := helper.GetUserID(c); uid != "" {
		return uid, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated")
}

func sessionParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid wizard session id")
	}
	return id, nil
}

// respond writes the wizard view, or the error with the view attached when
// the step failed but the session survives.
func respond(c *fiber.Ctx, v service.View, err error, okMsg string) error {
	switch {
	case err == nil:
		return helper.JsonOK(c, okMsg, v)
	case errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Wizard session not found or expired")
	case service.IsValidation(err):
		var fe helper.FieldErrors
		errors.As(err, &fe)
		return helper.JsonErrorWithData(c, fiber.StatusUnprocessableEntity, "validation failed", fe, v)
	case v.SessionID != "":
		status := hodapi.StatusOf(err)
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		}
		if status == 0 {
			status = fiber.StatusBadGateway
		}
		msg := v.Error
		if msg == "" {
			msg = hodapi.Message(err, "Failed to save CLO")
		}
		return helper.JsonErrorWithData(c, status, msg, nil, v)
	default:
		return helper.FromUpstreamError(c, err, "Wizard request failed")
	}
}

// 🟢 POST /api/hod/courses/:courseId/clo-wizard
func (ctrl *CLOWizardController) Start(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	courseID := strings.TrimSpace(c.Params("courseId"))
	if courseID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId is required")
	}
	var req dto.StartWizardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	v, err := ctrl.Service.Start(helper.UpstreamContext(c), uid, hodapi.ID(courseID), req.Count, req.DraftForms()...)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Could not validate the number of CLOs")
	}
	return helper.JsonCreated(c, "CLO wizard started", v)
}

// 🟢 POST /api/hod/courses/:courseId/clos/:cloId/edit-wizard
func (ctrl *CLOWizardController) StartEdit(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	courseID := hodapi.ID(strings.TrimSpace(c.Params("courseId")))
	cloID := hodapi.ID(strings.TrimSpace(c.Params("cloId")))
	if courseID.IsZero() || cloID.IsZero() {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId and cloId are required")
	}
	ctx := helper.UpstreamContext(c)

	clo, err := ctrl.lookupCLO(c, courseID, cloID)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to load CLO")
	}

	v, err := ctrl.Service.Edit(ctx, uid, courseID, clo)
	if err != nil {
		return helper.FromUpstreamError(c, err, "Failed to open CLO editor")
	}
	return helper.JsonCreated(c, "CLO edit wizard started", v)
}

// lookupCLO fetches one CLO, falling back to the course's CLO list.
func (ctrl *CLOWizardController) lookupCLO(c *fiber.Ctx, courseID, cloID hodapi.ID) (hodapi.CLO, error) {
	ctx := helper.UpstreamContext(c)
	res, err := ctrl.API.CLOs.Get(ctx, cloID)
	if err == nil && !res.Data.ID.IsZero() {
		return res.Data, nil
	}
	if err != nil {
		log.Printf("[WIZARD] CLO %s lookup failed, scanning course %s: %v", cloID, courseID, err)
	}

	list := closService.NewListPage(ctrl.API, courseID)
	defer list.Close()
	v := list.Load(ctx)
	if clo, ok := list.EditDraft(cloID); ok {
		return clo, nil
	}
	if v.Error != "" {
		return hodapi.CLO{}, fiber.NewError(fiber.StatusBadGateway, v.Error)
	}
	return hodapi.CLO{}, fiber.NewError(fiber.StatusNotFound, "CLO not found")
}

// 🟢 GET /api/hod/clo-wizard/:id
func (ctrl *CLOWizardController) Get(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	id, err := sessionParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	v, err := ctrl.Service.Get(c.UserContext(), uid, id)
	return respond(c, v, err, "CLO wizard")
}

// 🟢 PATCH /api/hod/clo-wizard/:id/form
func (ctrl *CLOWizardController) SetForm(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	id, err := sessionParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	var body dto.FormBody
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	v, err := ctrl.Service.SetForm(c.UserContext(), uid, id, body.ToForm())
	return respond(c, v, err, "Form updated")
}

// 🟢 POST /api/hod/clo-wizard/:id/submit
func (ctrl *CLOWizardController) Submit(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	id, err := sessionParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	v, err := ctrl.Service.Submit(helper.UpstreamContext(c), uid, id)
	msg := "CLO saved"
	if v.Done {
		msg = "All CLOs saved"
	}
	return respond(c, v, err, msg)
}

// 🟢 POST /api/hod/clo-wizard/:id/prev
func (ctrl *CLOWizardController) Prev(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	id, err := sessionParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	v, err := ctrl.Service.Prev(c.UserContext(), uid, id)
	return respond(c, v, err, "Previous step")
}

// 🟢 POST /api/hod/clo-wizard/:id/goto/:step
func (ctrl *CLOWizardController) GoTo(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	id, err := sessionParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	step, err := c.ParamsInt("step")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid step")
	}
	v, err := ctrl.Service.GoTo(c.UserContext(), uid, id, step)
	return respond(c, v, err, "Step changed")
}

// 🟢 DELETE /api/hod/clo-wizard/:id
func (ctrl *CLOWizardController) Discard(c *fiber.Ctx) error {
	uid, err := owner(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	id, err := sessionParam(c)
	if err != nil {
		return helper.FromUpstreamError(c, err, "")
	}
	if err := ctrl.Service.Discard(c.UserContext(), uid, id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Wizard session not found or expired")
		}
		return helper.FromUpstreamError(c, err, "Failed to discard wizard")
	}
	return helper.JsonDeleted(c, "Wizard discarded; CLOs already saved are kept", nil)
}
