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

func newParentService(t *testing.T, fx dashboardFixture, publisher TaskAssignmentPublisher) ParentDashboardService {
	t.Helper()
	return NewParentDashboardService(fx.repo, fx.redis, time.Minute, nil, publisher, validator.New(), zerolog.Nop())
}

func TestParentDashboardServiceStartsOnAssignTask(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := newParentService(t, fx, &recordingPublisher{})

	created, err := svc.Create(context.Background())
	require.NoError(t, err)
	require.Equal(t, board.ParentAssignTask, created.View)
	require.Equal(t, "Assign New Task", created.Panel.Title)
	require.NotNil(t, created.Panel.TaskDraft)
	require.True(t, created.Panel.TaskDraft.IsZero())
	require.Equal(t, 65, created.Summary.DailyProgress)
	require.Equal(t, 4, created.Summary.PendingReviews)
	require.Len(t, created.Nav, 5)
	for _, entry := range created.Nav {
		require.Equal(t, entry.View == string(board.ParentAssignTask), entry.Active)
	}
}

func TestParentDashboardServiceSelectView(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := newParentService(t, fx, &recordingPublisher{})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	for _, view := range board.ParentViews() {
		updated, err := svc.SelectView(ctx, created.ID, dto.SelectViewRequest{View: string(view)})
		require.NoError(t, err)
		require.Equal(t, view, updated.View)
		require.Equal(t, string(view), updated.Panel.View)
	}

	_, err = svc.SelectView(ctx, created.ID, dto.SelectViewRequest{View: "rate-tasks"})
	require.ErrorIs(t, err, ErrInvalidView)

	current, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, board.ParentSchedule, current.View)
	require.Equal(t, "Family Schedule", current.Panel.Title)
}

func TestParentDashboardServiceReviewsSubmissions(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := newParentService(t, fx, &recordingPublisher{})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SelectView(ctx, created.ID, dto.SelectViewRequest{View: string(board.ParentApprovalCenter)})
	require.NoError(t, err)

	approved, err := svc.ReviewSubmission(ctx, created.ID, 1, true)
	require.NoError(t, err)
	require.Equal(t, 3, approved.Summary.PendingReviews)
	require.Len(t, approved.Panel.Reviews, 3)

	repeated, err := svc.ReviewSubmission(ctx, created.ID, 1, true)
	require.NoError(t, err)
	require.Equal(t, approved.Panel, repeated.Panel)

	unknown, err := svc.ReviewSubmission(ctx, created.ID, 42, false)
	require.NoError(t, err)
	require.Equal(t, approved.Panel, unknown.Panel)

	var last dto.ParentBoardResponse
	for _, id := range []int{2, 3, 4} {
		last, err = svc.ReviewSubmission(ctx, created.ID, id, id%2 == 0)
		require.NoError(t, err)
	}
	require.Empty(t, last.Panel.Reviews)
	require.Equal(t, "All caught up! No pending submissions.", last.Panel.EmptyMessage)

	stored, err := fx.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	statuses := map[int]board.ReviewStatus{}
	for _, review := range stored.ParentState().Reviews {
		statuses[review.ID] = review.Status
	}
	require.Equal(t, map[int]board.ReviewStatus{
		1: board.ReviewApproved,
		2: board.ReviewApproved,
		3: board.ReviewRejected,
		4: board.ReviewApproved,
	}, statuses)
}

func TestParentDashboardServiceTaskForm(t *testing.T) {
	fx := newDashboardFixture(t)
	publisher := &recordingPublisher{}
	svc := newParentService(t, fx, publisher)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.SubmitTaskDraft(ctx, created.ID)
	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	require.Empty(t, publisher.published())

	edited, err := svc.EditTaskDraft(ctx, created.ID, dto.TaskDraftRequest{
		Title:       strPtr("  <b>Water the plants</b> "),
		Description: strPtr("Front and back garden"),
	})
	require.NoError(t, err)
	require.Equal(t, "Water the plants", edited.Panel.TaskDraft.Title)

	edited, err = svc.EditTaskDraft(ctx, created.ID, dto.TaskDraftRequest{
		DueDate: strPtr("2025-01-05"),
		Points:  intPtr(25),
	})
	require.NoError(t, err)
	require.Equal(t, "Front and back garden", edited.Panel.TaskDraft.Description)
	require.Equal(t, 25, *edited.Panel.TaskDraft.Points)

	submitted, err := svc.SubmitTaskDraft(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, submitted.Panel.TaskDraft.IsZero())

	published := publisher.published()
	require.Len(t, published, 1)
	require.Equal(t, created.ID, published[0].BoardID)
	require.Equal(t, board.RoleParent, published[0].Role)
	require.Equal(t, "Water the plants", published[0].Task.Title)

	stored, err := fx.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	state := stored.ParentState()
	seed := board.SeedParent()
	require.Equal(t, seed.Reviews, state.Reviews)
	require.Equal(t, seed.Achievements, state.Achievements)
}

func TestParentDashboardServiceTaskFormPublishFailureStillResets(t *testing.T) {
	fx := newDashboardFixture(t)
	publisher := &recordingPublisher{err: errors.New("bus down")}
	svc := newParentService(t, fx, publisher)
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.EditTaskDraft(ctx, created.ID, dto.TaskDraftRequest{
		Title:       strPtr("Tidy desk"),
		Description: strPtr("Books on the shelf"),
		DueDate:     strPtr("2025-01-02"),
		Points:      intPtr(0),
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitTaskDraft(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, submitted.Panel.TaskDraft.IsZero())
}

func TestParentDashboardServiceAchievementForm(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := newParentService(t, fx, &recordingPublisher{})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SelectView(ctx, created.ID, dto.SelectViewRequest{View: string(board.ParentAchievements)})
	require.NoError(t, err)

	_, err = svc.EditAchievementDraft(ctx, created.ID, dto.AchievementDraftRequest{Title: strPtr("Math Master")})
	require.NoError(t, err)
	_, err = svc.SubmitAchievementDraft(ctx, created.ID)
	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))

	_, err = svc.EditAchievementDraft(ctx, created.ID, dto.AchievementDraftRequest{
		Description: strPtr("Finish 5 Math tasks"),
		Reward:      strPtr("Movie Night"),
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitAchievementDraft(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Achievement System", submitted.Panel.Title)
	require.Len(t, submitted.Panel.Achievements, 3)
	require.Equal(t, board.Achievement{
		ID:          3,
		Title:       "Math Master",
		Description: "Finish 5 Math tasks",
		Reward:      "Movie Night",
	}, submitted.Panel.Achievements[2])
	require.Equal(t, board.AchievementDraft{}, *submitted.Panel.AchievementDraft)
}

func TestParentDashboardServiceAchievementKeepsTypedText(t *testing.T) {
	fx := newDashboardFixture(t)
	svc := newParentService(t, fx, &recordingPublisher{})
	ctx := context.Background()

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.SelectView(ctx, created.ID, dto.SelectViewRequest{View: string(board.ParentAchievements)})
	require.NoError(t, err)

	_, err = svc.EditAchievementDraft(ctx, created.ID, dto.AchievementDraftRequest{
		Title:       strPtr("Mom's Pick"),
		Description: strPtr("Finish 5 Math & Science tasks"),
		Reward:      strPtr(`<b>Pizza</b> "Night" <3`),
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitAchievementDraft(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, board.Achievement{
		ID:          3,
		Title:       "Mom's Pick",
		Description: "Finish 5 Math & Science tasks",
		Reward:      `Pizza "Night" <3`,
	}, submitted.Panel.Achievements[2])

	reloaded, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, submitted.Panel.Achievements, reloaded.Panel.Achievements)
}
