package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/dto"
	"github.com/noah-isme/kidtask-api/internal/models"
	"github.com/noah-isme/kidtask-api/internal/observability"
	"github.com/noah-isme/kidtask-api/internal/repository"
)

const (
	actionMount   = "mount"
	actionUnmount = "unmount"

	boardEventBufferSize = 16
)

// BoardChange describes an action that has been applied to a stored board.
type BoardChange struct {
	BoardID  string
	Role     board.Role
	Action   string
	Metadata map[string]interface{}
}

// BoardObserver is told about every board change once it is stored.
type BoardObserver interface {
	BoardChanged(ctx context.Context, change BoardChange)
}

// BoardActivityService keeps the audit trail of each board and streams its changes.
type BoardActivityService interface {
	BoardObserver
	Exists(ctx context.Context, boardID string) error
	List(ctx context.Context, boardID string, req dto.BoardActivityListRequest) (dto.BoardActivityListResponse, error)
	Subscribe(boardID string) (<-chan dto.BoardEvent, func())
}

type boardActivityService struct {
	repo   repository.BoardActivityRepository
	boards repository.BoardRepository
	broker *boardEventBroker
	tracer trace.Tracer
	logger zerolog.Logger
	now    func() time.Time
}

type boardEventBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan dto.BoardEvent]struct{}
}

// NewBoardActivityService constructs the activity service.
func NewBoardActivityService(repo repository.BoardActivityRepository, boards repository.BoardRepository, logger zerolog.Logger) BoardActivityService {
	return &boardActivityService{
		repo:   repo,
		boards: boards,
		broker: &boardEventBroker{
			subscribers: make(map[string]map[chan dto.BoardEvent]struct{}),
		},
		tracer: otel.Tracer("github.com/noah-isme/kidtask-api/internal/service/board_activity"),
		logger: logger.With().Str("component", "board_activity_service").Logger(),
		now:    time.Now,
	}
}

// BoardChanged records the change and forwards it to the board's subscribers.
// Unmounts are streamed but not recorded; deleting a board deletes its trail.
func (s *boardActivityService) BoardChanged(ctx context.Context, change BoardChange) {
	event := dto.BoardEvent{
		BoardID:    change.BoardID,
		Role:       change.Role,
		Action:     change.Action,
		Metadata:   change.Metadata,
		OccurredAt: s.now().UTC(),
	}

	if change.Action != actionUnmount {
		entry := models.BoardActivity{
			BoardID:   change.BoardID,
			Role:      string(change.Role),
			Action:    strings.ToLower(strings.TrimSpace(change.Action)),
			Metadata:  metadataJSON(change.Metadata),
			CreatedAt: event.OccurredAt,
		}
		if err := s.repo.Create(ctx, &entry); err != nil {
			s.logger.Error().Err(err).Str("board_id", change.BoardID).Str("action", change.Action).Msg("failed to persist board activity")
		}
	}

	s.broker.broadcast(change.BoardID, event)
}

// Exists returns ErrBoardNotFound unless the board is mounted.
func (s *boardActivityService) Exists(ctx context.Context, boardID string) error {
	found, err := s.boards.Exists(ctx, boardID)
	if err != nil {
		return fmt.Errorf("look up board %s: %w", boardID, err)
	}
	if !found {
		return ErrBoardNotFound
	}
	return nil
}

func (s *boardActivityService) List(ctx context.Context, boardID string, req dto.BoardActivityListRequest) (dto.BoardActivityListResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.activity.list", trace.WithAttributes(attribute.String("dashboard.board_id", boardID)))
	defer span.End()

	if err := s.Exists(ctx, boardID); err != nil {
		span.RecordError(err)
		return dto.BoardActivityListResponse{}, err
	}

	entries, total, err := s.repo.List(ctx, repository.BoardActivityFilter{
		BoardID:  boardID,
		Action:   strings.ToLower(strings.TrimSpace(req.Action)),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		span.RecordError(err)
		return dto.BoardActivityListResponse{}, err
	}

	items := make([]dto.BoardActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewBoardActivityResponse(entry))
	}

	pagination := dto.PaginationMeta{
		Page:       max(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
		TotalPages: 1,
	}
	if req.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	}

	return dto.BoardActivityListResponse{Items: items, Pagination: pagination}, nil
}

func (s *boardActivityService) Subscribe(boardID string) (<-chan dto.BoardEvent, func()) {
	channel := make(chan dto.BoardEvent, boardEventBufferSize)

	s.broker.subscribe(boardID, channel)
	observability.StreamClientsActive().Inc()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			s.broker.unsubscribe(boardID, channel)
			observability.StreamClientsActive().Dec()
		})
	}

	return channel, cleanup
}

func metadataJSON(metadata map[string]interface{}) datatypes.JSONMap {
	result := datatypes.JSONMap{}
	for key, value := range metadata {
		result[key] = value
	}
	return result
}

func (b *boardEventBroker) subscribe(boardID string, ch chan dto.BoardEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[boardID]; !exists {
		b.subscribers[boardID] = make(map[chan dto.BoardEvent]struct{})
	}
	b.subscribers[boardID][ch] = struct{}{}
}

func (b *boardEventBroker) unsubscribe(boardID string, ch chan dto.BoardEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[boardID]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, boardID)
		}
	}
}

// broadcast never blocks; a subscriber with a full buffer misses the event.
func (b *boardEventBroker) broadcast(boardID string, event dto.BoardEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[boardID] {
		select {
		case ch <- event:
		default:
		}
	}
}
