package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/middleware"
	"github.com/noah-isme/kidtask-api/internal/service"
	"github.com/noah-isme/kidtask-api/internal/utils"
)

func parseIntParam(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Params(key))
	if value == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		if fieldErr.Param() != "" {
			details[field] = fmt.Sprintf("failed %s=%s", fieldErr.Tag(), fieldErr.Param())
			continue
		}
		details[field] = "failed " + fieldErr.Tag()
	}
	return details
}

// handleDashboardError maps service errors onto HTTP responses shared by every dashboard role.
func handleDashboardError(c *fiber.Ctx, logger zerolog.Logger, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "board not found")
	case errors.Is(err, service.ErrInvalidView):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnknownRole):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientPoints):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validationDetails(err))
	default:
		reqLogger := middleware.RequestLogger(c, logger)
		reqLogger.Error().Err(err).Msg("failed to " + action)
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to "+action)
	}
}
