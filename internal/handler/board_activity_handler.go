package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/middleware"
	"github.com/noah-isme/kidtask-api/internal/service"
	"github.com/noah-isme/kidtask-api/internal/utils"
)

const (
	defaultActivityPageSize = 25
	maxActivityPageSize     = 200
)

// BoardActivityHandler exposes the audit trail and live event stream of any board.
type BoardActivityHandler struct {
	service   service.BoardActivityService
	logger    zerolog.Logger
	keepAlive time.Duration
}

// NewBoardActivityHandler constructs a handler instance.
func NewBoardActivityHandler(service service.BoardActivityService, logger zerolog.Logger, keepAlive time.Duration) *BoardActivityHandler {
	return &BoardActivityHandler{
		service:   service,
		logger:    logger.With().Str("component", "board_activity_handler").Logger(),
		keepAlive: keepAlive,
	}
}

// Register binds the activity routes.
func (h *BoardActivityHandler) Register(router fiber.Router) {
	router.Get("/boards/:boardID/activity", h.list)
	router.Get("/boards/:boardID/events", h.stream)
}

func (h *BoardActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = defaultActivityPageSize
	} else if pageSize > maxActivityPageSize {
		pageSize = maxActivityPageSize
	}

	req := dto.BoardActivityListRequest{
		Page:     page,
		PageSize: pageSize,
		Action:   c.Query("action"),
	}

	response, err := h.service.List(c.UserContext(), c.Params("boardID"), req)
	if err != nil {
		return handleDashboardError(c, h.logger, err, "list board activity")
	}
	return utils.SendSuccess(c, "board activity", response)
}

func (h *BoardActivityHandler) stream(c *fiber.Ctx) error {
	boardID := c.Params("boardID")
	if err := h.service.Exists(c.UserContext(), boardID); err != nil {
		return handleDashboardError(c, h.logger, err, "open board stream")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// Closed when the server shuts down, so open streams do not hold it up.
	shutdown := c.Context().Done()
	events, cleanup := h.service.Subscribe(boardID)

	keepAlive := h.keepAlive
	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}
	logger := middleware.RequestLogger(c, h.logger)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cleanup()

		ticker := time.NewTicker(keepAlive / 2)
		defer ticker.Stop()

		pumpBoardEvents(w, events, ticker.C, shutdown, logger)
	})

	return nil
}

// pumpBoardEvents copies events to the stream until the board is unmounted,
// the subscription closes, a write fails or the server shuts down.
func pumpBoardEvents(w *bufio.Writer, events <-chan dto.BoardEvent, keepAlive <-chan time.Time, shutdown <-chan struct{}, logger zerolog.Logger) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeBoardEvent(w, event); err != nil {
				logger.Debug().Err(err).Msg("failed to write board event")
				return
			}
			if event.Action == "unmount" {
				return
			}
		case <-keepAlive:
			if err := writeKeepAlive(w); err != nil {
				logger.Debug().Err(err).Msg("board stream closed")
				return
			}
		case <-shutdown:
			return
		}
	}
}

func writeBoardEvent(w *bufio.Writer, event dto.BoardEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", event.Action); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, ": keep-alive %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.Flush()
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
