package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/models"
	"github.com/noah-isme/kidtask-api/internal/observability"
	"github.com/noah-isme/kidtask-api/internal/repository"
)

// boardStore loads, saves and caches board snapshots for a single role.
type boardStore struct {
	role     board.Role
	repo     repository.BoardRepository
	cache    *redis.Client
	cacheTTL time.Duration
	locks    *boardLocks
	observer BoardObserver
	logger   zerolog.Logger
	now      func() time.Time
}

func newBoardStore(role board.Role, repo repository.BoardRepository, cache *redis.Client, ttl time.Duration, observer BoardObserver, logger zerolog.Logger) *boardStore {
	return &boardStore{
		role:     role,
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		locks:    newBoardLocks(),
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *boardStore) cacheKey(id string) string {
	return fmt.Sprintf("dashboard:%s:%s", s.role, id)
}

func (s *boardStore) create(ctx context.Context, model models.Board) error {
	now := s.now()
	model.CreatedAt = now
	model.UpdatedAt = now
	if err := s.repo.Create(ctx, &model); err != nil {
		return fmt.Errorf("create %s board: %w", s.role, err)
	}
	s.notify(ctx, model.ID, actionMount, nil)
	return nil
}

func (s *boardStore) load(ctx context.Context, id string) (models.Board, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Board{}, ErrBoardNotFound
		}
		return models.Board{}, fmt.Errorf("load board %s: %w", id, err)
	}
	if model.Role != string(s.role) {
		return models.Board{}, ErrBoardNotFound
	}
	return model, nil
}

// update runs apply against the stored board while holding the board lock,
// persists the result and drops the cached render.
func (s *boardStore) update(ctx context.Context, id, action string, metadata map[string]interface{}, apply func(models.Board) (models.Board, error)) (models.Board, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return models.Board{}, err
	}

	next, err := apply(current)
	if err != nil {
		return models.Board{}, err
	}
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, &next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Board{}, ErrBoardNotFound
		}
		return models.Board{}, fmt.Errorf("save board %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.notify(ctx, id, action, metadata)
	observability.DashboardActions().WithLabelValues(string(s.role), action).Inc()
	s.logger.Debug().Str("board_id", id).Str("action", action).Msg("dashboard action applied")

	return next, nil
}

func (s *boardStore) remove(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("delete board %s: %w", id, err)
	}

	s.invalidate(ctx, id)
	s.notify(ctx, id, actionUnmount, nil)
	return nil
}

func (s *boardStore) notify(ctx context.Context, id, action string, metadata map[string]interface{}) {
	if s.observer == nil {
		return
	}
	s.observer.BoardChanged(ctx, BoardChange{BoardID: id, Role: s.role, Action: action, Metadata: metadata})
}

// changeMetadata turns the action-specific span attributes into activity metadata.
func changeMetadata(attrs []attribute.KeyValue) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	metadata := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		metadata[strings.TrimPrefix(string(attr.Key), "dashboard.")] = attr.Value.AsInterface()
	}
	return metadata
}

func (s *boardStore) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey(id)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("board_id", id).Msg("failed to invalidate dashboard cache")
	}
}

// renderCached returns the cached render of a board or builds and stores it.
func renderCached[T any](ctx context.Context, s *boardStore, id string, render func(models.Board) T) (T, error) {
	var zero T
	key := s.cacheKey(id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var response T
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				observability.DashboardCacheLookups().WithLabelValues(string(s.role), "hit").Inc()
				s.logger.Debug().Str("board_id", id).Msg("dashboard cache hit")
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
		observability.DashboardCacheLookups().WithLabelValues(string(s.role), "miss").Inc()
	}

	// Held until the render is cached so a concurrent update cannot be overwritten by a stale render.
	unlock := s.locks.Lock(id)
	defer unlock()

	model, err := s.load(ctx, id)
	if err != nil {
		return zero, err
	}
	response := render(model)

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}
