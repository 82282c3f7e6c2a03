package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/handler"
	"github.com/noah-isme/kidtask-api/internal/service"
)

type stubParentService struct {
	err          error
	lastBoard    string
	lastView     string
	lastApproved *bool
	lastPatch    dto.TaskDraftRequest
}

func (s *stubParentService) respond(boardID string) (dto.ParentBoardResponse, error) {
	s.lastBoard = boardID
	if s.err != nil {
		return dto.ParentBoardResponse{}, s.err
	}
	return dto.NewParentBoardResponse(boardID, board.SeedParent()), nil
}

func (s *stubParentService) Create(context.Context) (dto.ParentBoardResponse, error) {
	return s.respond("new-board")
}

func (s *stubParentService) Get(_ context.Context, boardID string) (dto.ParentBoardResponse, error) {
	return s.respond(boardID)
}

func (s *stubParentService) Delete(_ context.Context, boardID string) error {
	s.lastBoard = boardID
	return s.err
}

func (s *stubParentService) SelectView(_ context.Context, boardID string, payload dto.SelectViewRequest) (dto.ParentBoardResponse, error) {
	s.lastView = payload.View
	return s.respond(boardID)
}

func (s *stubParentService) ReviewSubmission(_ context.Context, boardID string, _ int, approved bool) (dto.ParentBoardResponse, error) {
	s.lastApproved = &approved
	return s.respond(boardID)
}

func (s *stubParentService) EditTaskDraft(_ context.Context, boardID string, payload dto.TaskDraftRequest) (dto.ParentBoardResponse, error) {
	s.lastPatch = payload
	return s.respond(boardID)
}

func (s *stubParentService) SubmitTaskDraft(_ context.Context, boardID string) (dto.ParentBoardResponse, error) {
	return s.respond(boardID)
}

func (s *stubParentService) EditAchievementDraft(_ context.Context, boardID string, _ dto.AchievementDraftRequest) (dto.ParentBoardResponse, error) {
	return s.respond(boardID)
}

func (s *stubParentService) SubmitAchievementDraft(_ context.Context, boardID string) (dto.ParentBoardResponse, error) {
	return s.respond(boardID)
}

func newParentApp(svc service.ParentDashboardService) *fiber.App {
	app := fiber.New()
	handler.NewParentDashboardHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/parent"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response, data interface{}) (bool, string, map[string]string) {
	t.Helper()
	defer resp.Body.Close()

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    json.RawMessage   `json:"data"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	if data != nil && len(payload.Data) > 0 {
		require.NoError(t, json.Unmarshal(payload.Data, data))
	}
	return payload.Success, payload.Message, payload.Details
}

func TestParentDashboardHandler_RoutesToService(t *testing.T) {
	svc := &stubParentService{}
	app := newParentApp(svc)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/parent/boards", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.ParentBoardResponse
	ok, message, _ := decodeEnvelope(t, resp, &created)
	require.True(t, ok)
	require.Equal(t, "board mounted", message)
	require.Equal(t, "new-board", created.ID)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/parent/boards/b1/view", dto.SelectViewRequest{View: "schedule"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "schedule", svc.lastView)
	require.Equal(t, "b1", svc.lastBoard)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/parent/boards/b1/submissions/3/reject", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastApproved)
	require.False(t, *svc.lastApproved)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/parent/boards/b1/submissions/3/approve", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, *svc.lastApproved)

	resp = doJSON(t, app, http.MethodPatch, "/api/v1/parent/boards/b1/forms/task", map[string]interface{}{"title": "Feed the cat", "points": 5})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Feed the cat", *svc.lastPatch.Title)
	require.Equal(t, 5, *svc.lastPatch.Points)
	require.Nil(t, svc.lastPatch.DueDate)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/parent/boards/b1/forms/achievement/submit", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestParentDashboardHandler_InvalidSubmissionID(t *testing.T) {
	app := newParentApp(&stubParentService{})

	resp := doJSON(t, app, http.MethodPost, "/api/v1/parent/boards/b1/submissions/abc/approve", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParentDashboardHandler_ErrorMapping(t *testing.T) {
	validationErr := validator.New().Struct(board.AchievementDraft{})
	require.Error(t, validationErr)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: service.ErrBoardNotFound, status: fiber.StatusNotFound},
		{name: "invalid view", err: fmt.Errorf("%w: %q", service.ErrInvalidView, "nope"), status: fiber.StatusBadRequest},
		{name: "validation", err: validationErr, status: fiber.StatusBadRequest},
		{name: "internal", err: errors.New("disk on fire"), status: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newParentApp(&stubParentService{err: tc.err})
			resp := doJSON(t, app, http.MethodPost, "/api/v1/parent/boards/b1/forms/achievement/submit", nil)
			require.Equal(t, tc.status, resp.StatusCode)

			ok, message, details := decodeEnvelope(t, resp, nil)
			require.False(t, ok)
			require.NotEmpty(t, message)
			if tc.name == "validation" {
				require.Equal(t, "validation failed", message)
				require.Contains(t, details, "title")
				require.Contains(t, details, "reward")
			}
			if tc.name == "internal" {
				require.NotContains(t, message, "disk on fire")
			}
		})
	}
}
