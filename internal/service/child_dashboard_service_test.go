package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/dto"
)

func TestChildDashboardServiceCompletesTasks(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := NewChildDashboardService(fx.repo, fx.redis, time.Minute, nil, validator.New(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	require.Equal(t, board.RoleChild, created.Role)
	require.Equal(t, "My Tasks", created.Panel.Title)
	require.Len(t, created.Panel.Tasks, 5)
	require.Equal(t, 5, created.Summary.Level)
	require.Zero(t, created.Summary.CompletedTasks)

	updated, err := svc.CompleteTask(ctx, created.ID, 2)
	require.NoError(t, err)
	for _, task := range updated.Panel.Tasks {
		require.Equal(t, task.ID == 2, task.Completed)
	}
	require.Equal(t, 1, updated.Summary.CompletedTasks)
	require.Equal(t, 30, updated.Summary.PointsEarned)

	again, err := svc.CompleteTask(ctx, created.ID, 2)
	require.NoError(t, err)
	require.Equal(t, updated.Panel.Tasks, again.Panel.Tasks)

	unknown, err := svc.CompleteTask(ctx, created.ID, 99)
	require.NoError(t, err)
	require.Equal(t, updated.Panel.Tasks, unknown.Panel.Tasks)
}

func TestChildDashboardServiceCachesRenders(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := NewChildDashboardService(fx.repo, fx.redis, time.Minute, nil, validator.New(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	first, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, fx.mini.Exists("dashboard:child:"+created.ID))

	cached, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, first, cached)

	_, err = svc.CompleteTask(ctx, created.ID, 1)
	require.NoError(t, err)
	require.False(t, fx.mini.Exists("dashboard:child:"+created.ID))

	fresh, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, fresh.Panel.Tasks[0].Completed)
}

func TestChildDashboardServiceWithoutCache(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := NewChildDashboardService(fx.repo, nil, time.Minute, nil, validator.New(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Panel.Tasks, fetched.Panel.Tasks)
}

func TestChildDashboardServiceBoardLifecycle(t *testing.T) {
	fx := newDashboardFixture(t)
	child := NewChildDashboardService(fx.repo, fx.redis, time.Minute, nil, validator.New(), zerolog.Nop())
	teacher := NewTeacherDashboardService(fx.repo, fx.redis, time.Minute, nil, nil, nil, zerolog.Nop())
	ctx := context.Background()

	created, err := child.Create(ctx)
	require.NoError(t, err)

	_, err = teacher.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrBoardNotFound)

	require.NoError(t, child.Delete(ctx, created.ID))
	_, err = child.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrBoardNotFound)
	require.ErrorIs(t, child.Delete(ctx, created.ID), ErrBoardNotFound)

	_, err = child.CompleteTask(ctx, "missing", 1)
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestChildDashboardServiceBuysWishes(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := NewChildDashboardService(fx.repo, fx.redis, time.Minute, nil, validator.New(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.AddWish(ctx, created.ID, dto.WishRequest{Title: "Zoo trip", Cost: 10})
	require.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = svc.CompleteTask(ctx, created.ID, 1)
	require.NoError(t, err)

	bought, err := svc.AddWish(ctx, created.ID, dto.WishRequest{Title: " <b>Zoo</b> trip & ice cream ", Cost: 45})
	require.NoError(t, err)
	require.Equal(t, []board.Wish{
		{ID: 1, Title: "Zoo trip & ice cream", Cost: 45, Status: board.WishPending},
	}, bought.Panel.Wishes)
	require.Equal(t, 50, bought.Summary.PointsEarned)
	require.Equal(t, 45, bought.Summary.PointsSpent)
	require.Equal(t, 5, bought.Summary.PointsAvailable)

	_, err = svc.AddWish(ctx, created.ID, dto.WishRequest{Title: "Bike", Cost: 6})
	require.ErrorIs(t, err, ErrInsufficientPoints)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, bought.Panel.Wishes, fetched.Panel.Wishes)
}

func TestChildDashboardServiceValidatesWishes(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := NewChildDashboardService(fx.repo, fx.redis, time.Minute, nil, validator.New(), zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	var validationErrs validator.ValidationErrors
	_, err = svc.AddWish(ctx, created.ID, dto.WishRequest{Title: "<i></i>", Cost: 5})
	require.True(t, errors.As(err, &validationErrs))

	_, err = svc.AddWish(ctx, created.ID, dto.WishRequest{Title: "Sticker", Cost: 0})
	require.True(t, errors.As(err, &validationErrs))

	_, err = svc.AddWish(ctx, "missing", dto.WishRequest{Title: "Sticker", Cost: 5})
	require.ErrorIs(t, err, ErrBoardNotFound)
}
