package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/service"
	"github.com/noah-isme/kidtask-api/internal/utils"
)

// TeacherDashboardHandler exposes the teacher dashboard endpoints.
type TeacherDashboardHandler struct {
	service service.TeacherDashboardService
	logger  zerolog.Logger
}

// NewTeacherDashboardHandler creates a new handler instance.
func NewTeacherDashboardHandler(service service.TeacherDashboardService, logger zerolog.Logger) *TeacherDashboardHandler {
	return &TeacherDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_dashboard_handler").Logger(),
	}
}

// Register attaches the teacher board routes.
func (h *TeacherDashboardHandler) Register(router fiber.Router) {
	router.Post("/boards", h.create)
	router.Get("/boards/:boardID", h.get)
	router.Delete("/boards/:boardID", h.delete)
	router.Put("/boards/:boardID/view", h.selectView)
	router.Put("/boards/:boardID/submissions/:submissionID/rating", h.rate)
	router.Patch("/boards/:boardID/forms/task", h.editTaskDraft)
	router.Post("/boards/:boardID/forms/task/submit", h.submitTaskDraft)
}

func (h *TeacherDashboardHandler) create(c *fiber.Ctx) error {
	response, err := h.service.Create(c.UserContext())
	if err != nil {
		return handleDashboardError(c, h.logger, err, "mount teacher board")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "board mounted", response)
}

func (h *TeacherDashboardHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.UserContext(), c.Params("boardID"))
	if err != nil {
		return handleDashboardError(c, h.logger, err, "load teacher board")
	}
	return utils.SendSuccess(c, "board retrieved", response)
}

func (h *TeacherDashboardHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("boardID")); err != nil {
		return handleDashboardError(c, h.logger, err, "unmount teacher board")
	}
	return utils.SendSuccess(c, "board unmounted", nil)
}

func (h *TeacherDashboardHandler) selectView(c *fiber.Ctx) error {
	var payload dto.SelectViewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.SelectView(c.UserContext(), c.Params("boardID"), payload)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "select view")
	}
	return utils.SendSuccess(c, "view selected", response)
}

func (h *TeacherDashboardHandler) rate(c *fiber.Ctx) error {
	submissionID, err := parseIntParam(c, "submissionID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid submission identifier")
	}

	var payload dto.RatingRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.RateSubmission(c.UserContext(), c.Params("boardID"), submissionID, payload)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "rate submission")
	}
	return utils.SendSuccess(c, "submission rated", response)
}

func (h *TeacherDashboardHandler) editTaskDraft(c *fiber.Ctx) error {
	var payload dto.TaskDraftRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.EditTaskDraft(c.UserContext(), c.Params("boardID"), payload)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "edit task draft")
	}
	return utils.SendSuccess(c, "task draft updated", response)
}

func (h *TeacherDashboardHandler) submitTaskDraft(c *fiber.Ctx) error {
	response, err := h.service.SubmitTaskDraft(c.UserContext(), c.Params("boardID"))
	if err != nil {
		return handleDashboardError(c, h.logger, err, "submit task draft")
	}
	return utils.SendSuccess(c, "task assigned", response)
}
