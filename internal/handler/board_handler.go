package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/service"
	"github.com/noah-isme/kidtask-api/internal/utils"
)

// BoardHandler mounts boards for a role named in the request body.
type BoardHandler struct {
	registry service.DashboardRegistry
	logger   zerolog.Logger
}

// NewBoardHandler creates a new handler instance.
func NewBoardHandler(registry service.DashboardRegistry, logger zerolog.Logger) *BoardHandler {
	return &BoardHandler{
		registry: registry,
		logger:   logger.With().Str("component", "board_handler").Logger(),
	}
}

// Register attaches the role-dispatching mount route.
func (h *BoardHandler) Register(router fiber.Router) {
	router.Post("/boards", h.mount)
}

func (h *BoardHandler) mount(c *fiber.Ctx) error {
	var payload dto.MountBoardRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.registry.Mount(c.UserContext(), payload.Role)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "mount board")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "board mounted", response)
}
