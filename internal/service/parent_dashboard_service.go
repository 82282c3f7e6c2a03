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

// ParentDashboardService manages mounted parent dashboards.
type ParentDashboardService interface {
	Create(ctx context.Context) (dto.ParentBoardResponse, error)
	Get(ctx context.Context, boardID string) (dto.ParentBoardResponse, error)
	Delete(ctx context.Context, boardID string) error
	SelectView(ctx context.Context, boardID string, payload dto.SelectViewRequest) (dto.ParentBoardResponse, error)
	ReviewSubmission(ctx context.Context, boardID string, submissionID int, approved bool) (dto.ParentBoardResponse, error)
	EditTaskDraft(ctx context.Context, boardID string, payload dto.TaskDraftRequest) (dto.ParentBoardResponse, error)
	SubmitTaskDraft(ctx context.Context, boardID string) (dto.ParentBoardResponse, error)
	EditAchievementDraft(ctx context.Context, boardID string, payload dto.AchievementDraftRequest) (dto.ParentBoardResponse, error)
	SubmitAchievementDraft(ctx context.Context, boardID string) (dto.ParentBoardResponse, error)
}

type parentDashboardService struct {
	store     *boardStore
	publisher TaskAssignmentPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewParentDashboardService wires the parent dashboard to its store, cache and task publisher.
func NewParentDashboardService(repo repository.BoardRepository, cache *redis.Client, ttl time.Duration, observer BoardObserver, publisher TaskAssignmentPublisher, validate *validator.Validate, logger zerolog.Logger) ParentDashboardService {
	logger = logger.With().Str("component", "parent_dashboard_service").Logger()
	return &parentDashboardService{
		store:     newBoardStore(board.RoleParent, repo, cache, ttl, observer, logger),
		publisher: publisher,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("github.com/noah-isme/kidtask-api/internal/service/parent_dashboard"),
		logger:    logger,
		now:       time.Now,
	}
}

func renderParent(model models.Board) dto.ParentBoardResponse {
	return dto.NewParentBoardResponse(model.ID, model.ParentState())
}

func (s *parentDashboardService) Create(ctx context.Context) (dto.ParentBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.parent.create")
	defer span.End()

	model := models.NewParentBoard(uuid.NewString(), board.SeedParent())
	span.SetAttributes(attribute.String("dashboard.board_id", model.ID))
	if err := s.store.create(ctx, model); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "board_create_failed")
		return dto.ParentBoardResponse{}, err
	}

	s.logger.Info().Str("board_id", model.ID).Msg("parent dashboard mounted")
	return renderParent(model), nil
}

func (s *parentDashboardService) Get(ctx context.Context, boardID string) (dto.ParentBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.parent.get", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	response, err := renderCached(ctx, s.store, boardID, renderParent)
	if err != nil {
		span.RecordError(err)
		return dto.ParentBoardResponse{}, err
	}
	return response, nil
}

func (s *parentDashboardService) Delete(ctx context.Context, boardID string) error {
	ctx, span := s.tracer.Start(ctx, "dashboard.parent.delete", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	if err := s.store.remove(ctx, boardID); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info().Str("board_id", boardID).Msg("parent dashboard unmounted")
	return nil
}

func (s *parentDashboardService) SelectView(ctx context.Context, boardID string, payload dto.SelectViewRequest) (dto.ParentBoardResponse, error) {
	view, err := board.ParseParentView(payload.View)
	if err != nil {
		return dto.ParentBoardResponse{}, fmt.Errorf("%w: %q", ErrInvalidView, payload.View)
	}

	return s.apply(ctx, boardID, "select_view", func(state board.ParentState) (board.ParentState, error) {
		return board.ReduceParent(state, board.SelectParentView{View: view}), nil
	}, attribute.String("dashboard.view", string(view)))
}

func (s *parentDashboardService) ReviewSubmission(ctx context.Context, boardID string, submissionID int, approved bool) (dto.ParentBoardResponse, error) {
	action := "reject_submission"
	if approved {
		action = "approve_submission"
	}

	return s.apply(ctx, boardID, action, func(state board.ParentState) (board.ParentState, error) {
		return board.ReduceParent(state, board.ReviewSubmission{SubmissionID: submissionID, Approved: approved}), nil
	}, attribute.Int("dashboard.submission_id", submissionID))
}

func (s *parentDashboardService) EditTaskDraft(ctx context.Context, boardID string, payload dto.TaskDraftRequest) (dto.ParentBoardResponse, error) {
	patch := sanitizeTaskPatch(s.sanitizer, payload.Patch())

	return s.apply(ctx, boardID, "edit_task_draft", func(state board.ParentState) (board.ParentState, error) {
		return board.ReduceParent(state, board.EditTaskDraft{Patch: patch}), nil
	})
}

func (s *parentDashboardService) SubmitTaskDraft(ctx context.Context, boardID string) (dto.ParentBoardResponse, error) {
	var submitted board.TaskDraft
	response, err := s.apply(ctx, boardID, "submit_task_draft", func(state board.ParentState) (board.ParentState, error) {
		if err := s.validator.Struct(state.TaskDraft); err != nil {
			return board.ParentState{}, err
		}
		submitted = state.TaskDraft
		return board.ReduceParent(state, board.SubmitTaskDraft{}), nil
	})
	if err != nil {
		return dto.ParentBoardResponse{}, err
	}

	dispatchTaskAssignment(ctx, s.publisher, s.logger, TaskAssignment{
		BoardID:     boardID,
		Role:        board.RoleParent,
		Task:        submitted,
		SubmittedAt: s.now().UTC(),
	})

	return response, nil
}

func (s *parentDashboardService) EditAchievementDraft(ctx context.Context, boardID string, payload dto.AchievementDraftRequest) (dto.ParentBoardResponse, error) {
	patch := sanitizeAchievementPatch(s.sanitizer, payload.Patch())

	return s.apply(ctx, boardID, "edit_achievement_draft", func(state board.ParentState) (board.ParentState, error) {
		return board.ReduceParent(state, board.EditAchievementDraft{Patch: patch}), nil
	})
}

func (s *parentDashboardService) SubmitAchievementDraft(ctx context.Context, boardID string) (dto.ParentBoardResponse, error) {
	return s.apply(ctx, boardID, "submit_achievement_draft", func(state board.ParentState) (board.ParentState, error) {
		if err := s.validator.Struct(state.AchievementDraft); err != nil {
			return board.ParentState{}, err
		}

		next := board.ReduceParent(state, board.SubmitAchievementDraft{})
		created := next.Achievements[len(next.Achievements)-1]
		s.logger.Info().
			Str("board_id", boardID).
			Int("achievement_id", created.ID).
			Str("title", created.Title).
			Msg("achievement created")
		return next, nil
	})
}

func (s *parentDashboardService) apply(ctx context.Context, boardID, action string, reduce func(board.ParentState) (board.ParentState, error), attrs ...attribute.KeyValue) (dto.ParentBoardResponse, error) {
	metadata := changeMetadata(attrs)
	attrs = append(attrs,
		attribute.String("dashboard.board_id", boardID),
		attribute.String("dashboard.action", action),
	)
	ctx, span := s.tracer.Start(ctx, "dashboard.parent."+action, trace.WithAttributes(attrs...))
	defer span.End()

	model, err := s.store.update(ctx, boardID, action, metadata, func(current models.Board) (models.Board, error) {
		next, err := reduce(current.ParentState())
		if err != nil {
			return models.Board{}, err
		}
		return models.NewParentBoard(current.ID, next), nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, action+"_failed")
		return dto.ParentBoardResponse{}, err
	}

	return renderParent(model), nil
}
