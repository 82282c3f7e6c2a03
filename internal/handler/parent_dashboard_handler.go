package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/service"
	"github.com/noah-isme/kidtask-api/internal/utils"
)

// ParentDashboardHandler exposes the parent dashboard endpoints.
type ParentDashboardHandler struct {
	service service.ParentDashboardService
	logger  zerolog.Logger
}

// NewParentDashboardHandler creates a new handler instance.
func NewParentDashboardHandler(service service.ParentDashboardService, logger zerolog.Logger) *ParentDashboardHandler {
	return &ParentDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "parent_dashboard_handler").Logger(),
	}
}

// Register attaches the parent board routes.
func (h *ParentDashboardHandler) Register(router fiber.Router) {
	router.Post("/boards", h.create)
	router.Get("/boards/:boardID", h.get)
	router.Delete("/boards/:boardID", h.delete)
	router.Put("/boards/:boardID/view", h.selectView)
	router.Post("/boards/:boardID/submissions/:submissionID/approve", h.review(true))
	router.Post("/boards/:boardID/submissions/:submissionID/reject", h.review(false))
	router.Patch("/boards/:boardID/forms/task", h.editTaskDraft)
	router.Post("/boards/:boardID/forms/task/submit", h.submitTaskDraft)
	router.Patch("/boards/:boardID/forms/achievement", h.editAchievementDraft)
	router.Post("/boards/:boardID/forms/achievement/submit", h.submitAchievementDraft)
}

func (h *ParentDashboardHandler) create(c *fiber.Ctx) error {
	response, err := h.service.Create(c.UserContext())
	if err != nil {
		return handleDashboardError(c, h.logger, err, "mount parent board")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "board mounted", response)
}

func (h *ParentDashboardHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.UserContext(), c.Params("boardID"))
	if err != nil {
		return handleDashboardError(c, h.logger, err, "load parent board")
	}
	return utils.SendSuccess(c, "board retrieved", response)
}

func (h *ParentDashboardHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("boardID")); err != nil {
		return handleDashboardError(c, h.logger, err, "unmount parent board")
	}
	return utils.SendSuccess(c, "board unmounted", nil)
}

func (h *ParentDashboardHandler) selectView(c *fiber.Ctx) error {
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

func (h *ParentDashboardHandler) review(approved bool) fiber.Handler {
	message := "submission rejected"
	if approved {
		message = "submission approved"
	}

	return func(c *fiber.Ctx) error {
		submissionID, err := parseIntParam(c, "submissionID")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid submission identifier")
		}

		response, err := h.service.ReviewSubmission(c.UserContext(), c.Params("boardID"), submissionID, approved)
		if err != nil {
			return handleDashboardError(c, h.logger, err, "review submission")
		}
		return utils.SendSuccess(c, message, response)
	}
}

func (h *ParentDashboardHandler) editTaskDraft(c *fiber.Ctx) error {
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

func (h *ParentDashboardHandler) submitTaskDraft(c *fiber.Ctx) error {
	response, err := h.service.SubmitTaskDraft(c.UserContext(), c.Params("boardID"))
	if err != nil {
		return handleDashboardError(c, h.logger, err, "submit task draft")
	}
	return utils.SendSuccess(c, "task assigned", response)
}

func (h *ParentDashboardHandler) editAchievementDraft(c *fiber.Ctx) error {
	var payload dto.AchievementDraftRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.EditAchievementDraft(c.UserContext(), c.Params("boardID"), payload)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "edit achievement draft")
	}
	return utils.SendSuccess(c, "achievement draft updated", response)
}

func (h *ParentDashboardHandler) submitAchievementDraft(c *fiber.Ctx) error {
	response, err := h.service.SubmitAchievementDraft(c.UserContext(), c.Params("boardID"))
	if err != nil {
		return handleDashboardError(c, h.logger, err, "submit achievement draft")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "achievement created", response)
}
