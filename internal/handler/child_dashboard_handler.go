package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/service"
	"github.com/noah-isme/kidtask-api/internal/utils"
)

// ChildDashboardHandler exposes the child dashboard endpoints.
type ChildDashboardHandler struct {
	service service.ChildDashboardService
	logger  zerolog.Logger
}

// NewChildDashboardHandler creates a new handler instance.
func NewChildDashboardHandler(service service.ChildDashboardService, logger zerolog.Logger) *ChildDashboardHandler {
	return &ChildDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "child_dashboard_handler").Logger(),
	}
}

// Register attaches the child board routes.
func (h *ChildDashboardHandler) Register(router fiber.Router) {
	router.Post("/boards", h.create)
	router.Get("/boards/:boardID", h.get)
	router.Delete("/boards/:boardID", h.delete)
	router.Post("/boards/:boardID/tasks/:taskID/complete", h.completeTask)
	router.Post("/boards/:boardID/wishes", h.addWish)
}

func (h *ChildDashboardHandler) create(c *fiber.Ctx) error {
	response, err := h.service.Create(c.UserContext())
	if err != nil {
		return handleDashboardError(c, h.logger, err, "mount child board")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "board mounted", response)
}

func (h *ChildDashboardHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.UserContext(), c.Params("boardID"))
	if err != nil {
		return handleDashboardError(c, h.logger, err, "load child board")
	}
	return utils.SendSuccess(c, "board retrieved", response)
}

func (h *ChildDashboardHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("boardID")); err != nil {
		return handleDashboardError(c, h.logger, err, "unmount child board")
	}
	return utils.SendSuccess(c, "board unmounted", nil)
}

func (h *ChildDashboardHandler) completeTask(c *fiber.Ctx) error {
	taskID, err := parseIntParam(c, "taskID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task identifier")
	}

	response, err := h.service.CompleteTask(c.UserContext(), c.Params("boardID"), taskID)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "complete task")
	}
	return utils.SendSuccess(c, "task completed", response)
}

func (h *ChildDashboardHandler) addWish(c *fiber.Ctx) error {
	var payload dto.WishRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.AddWish(c.UserContext(), c.Params("boardID"), payload)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "add wish")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "wish added", response)
}
