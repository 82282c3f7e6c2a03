package service

import (
	"context"
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

// ChildDashboardService manages mounted child dashboards.
type ChildDashboardService interface {
	Create(ctx context.Context) (dto.ChildBoardResponse, error)
	Get(ctx context.Context, boardID string) (dto.ChildBoardResponse, error)
	Delete(ctx context.Context, boardID string) error
	CompleteTask(ctx context.Context, boardID string, taskID int) (dto.ChildBoardResponse, error)
	AddWish(ctx context.Context, boardID string, payload dto.WishRequest) (dto.ChildBoardResponse, error)
}

type childDashboardService struct {
	store     *boardStore
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewChildDashboardService wires the child dashboard to its store and cache.
func NewChildDashboardService(repo repository.BoardRepository, cache *redis.Client, ttl time.Duration, observer BoardObserver, validate *validator.Validate, logger zerolog.Logger) ChildDashboardService {
	logger = logger.With().Str("component", "child_dashboard_service").Logger()
	return &childDashboardService{
		store:     newBoardStore(board.RoleChild, repo, cache, ttl, observer, logger),
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("github.com/noah-isme/kidtask-api/internal/service/child_dashboard"),
		logger:    logger,
	}
}

func renderChild(model models.Board) dto.ChildBoardResponse {
	return dto.NewChildBoardResponse(model.ID, model.ChildState())
}

func (s *childDashboardService) Create(ctx context.Context) (dto.ChildBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.child.create")
	defer span.End()

	model := models.NewChildBoard(uuid.NewString(), board.SeedChild())
	span.SetAttributes(attribute.String("dashboard.board_id", model.ID))
	if err := s.store.create(ctx, model); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "board_create_failed")
		return dto.ChildBoardResponse{}, err
	}

	s.logger.Info().Str("board_id", model.ID).Msg("child dashboard mounted")
	return renderChild(model), nil
}

func (s *childDashboardService) Get(ctx context.Context, boardID string) (dto.ChildBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.child.get", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	response, err := renderCached(ctx, s.store, boardID, renderChild)
	if err != nil {
		span.RecordError(err)
		return dto.ChildBoardResponse{}, err
	}
	return response, nil
}

func (s *childDashboardService) Delete(ctx context.Context, boardID string) error {
	ctx, span := s.tracer.Start(ctx, "dashboard.child.delete", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	if err := s.store.remove(ctx, boardID); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info().Str("board_id", boardID).Msg("child dashboard unmounted")
	return nil
}

func (s *childDashboardService) CompleteTask(ctx context.Context, boardID string, taskID int) (dto.ChildBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.child.complete_task")
	span.SetAttributes(
		attribute.String("dashboard.board_id", boardID),
		attribute.Int("dashboard.task_id", taskID),
	)
	defer span.End()

	model, err := s.store.update(ctx, boardID, "complete_task", map[string]interface{}{"task_id": taskID}, func(current models.Board) (models.Board, error) {
		next := board.ReduceChild(current.ChildState(), board.CompleteTask{TaskID: taskID})
		return models.NewChildBoard(current.ID, next), nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "complete_task_failed")
		return dto.ChildBoardResponse{}, err
	}

	return renderChild(model), nil
}

// AddWish spends available points on a wish. Markup is stripped from the title
// before validation so an all-markup title is rejected as empty.
func (s *childDashboardService) AddWish(ctx context.Context, boardID string, payload dto.WishRequest) (dto.ChildBoardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.child.add_wish")
	span.SetAttributes(
		attribute.String("dashboard.board_id", boardID),
		attribute.Int("dashboard.wish_cost", payload.Cost),
	)
	defer span.End()

	payload.Title = *sanitizeField(s.sanitizer, &payload.Title)
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChildBoardResponse{}, err
	}

	model, err := s.store.update(ctx, boardID, "add_wish", map[string]interface{}{"cost": payload.Cost}, func(current models.Board) (models.Board, error) {
		state := current.ChildState()
		if payload.Cost > state.Summary().PointsAvailable {
			return models.Board{}, ErrInsufficientPoints
		}
		next := board.ReduceChild(state, board.AddWish{Title: payload.Title, Cost: payload.Cost})
		return models.NewChildBoard(current.ID, next), nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "add_wish_failed")
		return dto.ChildBoardResponse{}, err
	}

	s.logger.Info().Str("board_id", boardID).Str("title", payload.Title).Int("cost", payload.Cost).Msg("wish added")
	return renderChild(model), nil
}
