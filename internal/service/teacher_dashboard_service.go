package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/models"
	"github.com/noah-isme/kidtask-api/internal/repository"
)

// TeacherDashboardService manages mounted teacher dashboards.
type TeacherDashboardService interface {
	Create(ctx context.Context) (dto.TeacherBoardResponse, error)
	Get(ctx context.Context, boardID string) (dto.TeacherBoardResponse, error)
	Delete(ctx context.Context, boardID string) error
	SelectView(ctx context.Context, boardID string, payload dto.SelectViewRequest) (dto.TeacherBoardResponse, error)
	RateSubmission(ctx context.Context, boardID string, submissionID int, payload dto.RatingRequest) (dto.TeacherBoardResponse, error)
	EditTaskDraft(ctx context.Context, boardID string, payload dto.TaskDraftRequest) (dto.TeacherBoardResponse, error)
	SubmitTaskDraft(ctx context.Context, boardID string) (dto.TeacherBoardResponse, error)
}

type teacherDashboardService struct {
	store     *boardStore
	publisher TaskAssignmentPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewTeacherDashboardService wires the teacher dashboard to its store, cache and task publisher.
func NewTeacherDashboardService(repo repository.BoardRepository, cache *redis.Client, ttl time.Duration, observer BoardObserver, publisher TaskAssignmentPublisher, validate *validator.Validate, logger zerolog.Logger) TeacherDashboardService {
	logger = logger.With().Str("component", "teacher_dashboard_service").Logger()
	return &teacherDashboardService{
		store:     newBoardStore(board.RoleTeacher, repo, cache, ttl, observer, logger),
		publisher: publisher,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("github.com/noah-isme/kidtask-api/internal/service/teacher_dashboard"),
		logger:    logger,
		now:       time.Now,
	}
}

func renderTeacher(model models.Board) dto.TeacherBoardResponse {
	return dto.NewTeacherBoardResponse(model.ID, model.TeacherState())
}

func (s *teacherDashboardService) Create(ctx context.Context) (dto.TeacherBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.teacher.create")
	defer span.End()

	model := models.NewTeacherBoard(uuid.NewString(), board.SeedTeacher())
	span.SetAttributes(attribute.String("dashboard.board_id", model.ID))
	if err := s.store.create(ctx, model); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "board_create_failed")
		return dto.TeacherBoardResponse{}, err
	}

	s.logger.Info().Str("board_id", model.ID).Msg("teacher dashboard mounted")
	return renderTeacher(model), nil
}

func (s *teacherDashboardService) Get(ctx context.Context, boardID string) (dto.TeacherBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.teacher.get", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	response, err := renderCached(ctx, s.store, boardID, renderTeacher)
	if err != nil {
		span.RecordError(err)
		return dto.TeacherBoardResponse{}, err
	}
	return response, nil
}

func (s *teacherDashboardService) Delete(ctx context.Context, boardID string) error {
	ctx, span := s.tracer.Start(ctx, "dashboard.teacher.delete", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	if err := s.store.remove(ctx, boardID); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info().Str("board_id", boardID).Msg("teacher dashboard unmounted")
	return nil
}

func (s *teacherDashboardService) SelectView(ctx context.Context, boardID string, payload dto.SelectViewRequest) (dto.TeacherBoardResponse, error) {
	view, err := board.ParseTeacherView(payload.View)
	if err != nil {
		return dto.TeacherBoardResponse{}, fmt.Errorf("%w: %q", ErrInvalidView, payload.View)
	}

	return s.apply(ctx, boardID, "select_view", func(state board.TeacherState) (board.TeacherState, error) {
		return board.ReduceTeacher(state, board.SelectTeacherView{View: view}), nil
	}, attribute.String("dashboard.view", string(view)))
}

func (s *teacherDashboardService) RateSubmission(ctx context.Context, boardID string, submissionID int, payload dto.RatingRequest) (dto.TeacherBoardResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherBoardResponse{}, err
	}

	return s.apply(ctx, boardID, "rate_submission", func(state board.TeacherState) (board.TeacherState, error) {
		return board.ReduceTeacher(state, board.RateSubmission{SubmissionID: submissionID, Stars: payload.Stars}), nil
	},
		attribute.Int("dashboard.submission_id", submissionID),
		attribute.Int("dashboard.stars", payload.Stars),
	)
}

func (s *teacherDashboardService) EditTaskDraft(ctx context.Context, boardID string, payload dto.TaskDraftRequest) (dto.TeacherBoardResponse, error) {
	patch := sanitizeTaskPatch(s.sanitizer, payload.Patch())

	return s.apply(ctx, boardID, "edit_task_draft", func(state board.TeacherState) (board.TeacherState, error) {
		return board.ReduceTeacher(state, board.EditTaskDraft{Patch: patch}), nil
	})
}

func (s *teacherDashboardService) SubmitTaskDraft(ctx context.Context, boardID string) (dto.TeacherBoardResponse, error) {
	var submitted board.TaskDraft
	response, err := s.apply(ctx, boardID, "submit_task_draft", func(state board.TeacherState) (board.TeacherState, error) {
		if err := s.validator.Struct(state.TaskDraft); err != nil {
			return board.TeacherState{}, err
		}
		submitted = state.TaskDraft
		return board.ReduceTeacher(state, board.SubmitTaskDraft{}), nil
	})
	if err != nil {
		return dto.TeacherBoardResponse{}, err
	}

	dispatchTaskAssignment(ctx, s.publisher, s.logger, TaskAssignment{
		BoardID:     boardID,
		Role:        board.RoleTeacher,
		Task:        submitted,
		SubmittedAt: s.now().UTC(),
	})

	return response, nil
}

func (s *teacherDashboardService) apply(ctx context.Context, boardID, action string, reduce func(board.TeacherState) (board.TeacherState, error), attrs ...attribute.KeyValue) (dto.TeacherBoardResponse, error) {
	metadata := changeMetadata(attrs)
	attrs = append(attrs,
		attribute.String("dashboard.board_id", boardID),
		attribute.String("dashboard.action", action),
	)
	ctx, span := s.tracer.Start(ctx, "dashboard.teacher."+action, trace.WithAttributes(attrs...))
	defer span.End()

	model, err := s.store.update(ctx, boardID, action, metadata, func(current models.Board) (models.Board, error) {
		next, err := reduce(current.TeacherState())
		if err != nil {
			return models.Board{}, err
		}
		return models.NewTeacherBoard(current.ID, next), nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, action+"_failed")
		return dto.TeacherBoardResponse{}, err
	}

	return renderTeacher(model), nil
}
