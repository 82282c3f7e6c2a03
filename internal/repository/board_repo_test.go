package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/models"
)

func setupBoardTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.BoardModels()...))
	return db
}

func TestBoardRepositoryRoundTripsParentBoard(t *testing.T) {
	repo := NewBoardRepository(setupBoardTestDB(t))
	ctx := context.Background()

	id := uuid.NewString()
	seed := board.SeedParent()
	model := models.NewParentBoard(id, seed)
	require.NoError(t, repo.Create(ctx, &model))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, string(board.RoleParent), stored.Role)
	require.Equal(t, seed, stored.ParentState())

	title := "Kindness Star"
	next := board.ReduceParent(seed, board.ReviewSubmission{SubmissionID: 2, Approved: true})
	next = board.ReduceParent(next, board.SelectParentView{View: board.ParentApprovalCenter})
	next = board.ReduceParent(next, board.EditAchievementDraft{Patch: board.AchievementDraftPatch{Title: &title}})
	updated := models.NewParentBoard(id, next)
	require.NoError(t, repo.Replace(ctx, &updated))

	reloaded, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	state := reloaded.ParentState()
	require.Equal(t, board.ParentApprovalCenter, state.View)
	require.Equal(t, board.ReviewApproved, state.Reviews[1].Status)
	require.Equal(t, "Kindness Star", state.AchievementDraft.Title)
	require.Equal(t, seed.Achievements, state.Achievements)
}

func TestBoardRepositoryKeepsTaskOrderAndDrafts(t *testing.T) {
	repo := NewBoardRepository(setupBoardTestDB(t))
	ctx := context.Background()

	id := uuid.NewString()
	seed := board.SeedTeacher()
	points := 15
	seed = board.ReduceTeacher(seed, board.EditTaskDraft{Patch: board.TaskDraftPatch{Points: &points}})
	model := models.NewTeacherBoard(id, seed)
	require.NoError(t, repo.Create(ctx, &model))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	state := stored.TeacherState()
	require.Len(t, state.Ratings, 4)
	for i, rating := range state.Ratings {
		require.Equal(t, seed.Ratings[i].ID, rating.ID)
	}
	require.NotNil(t, state.TaskDraft.Points)
	require.Equal(t, 15, *state.TaskDraft.Points)
	require.Equal(t, "4-B", state.Class.ClassName)
}

func TestBoardRepositoryMissingBoard(t *testing.T) {
	repo := NewBoardRepository(setupBoardTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	model := models.NewChildBoard("missing", board.SeedChild())
	require.ErrorIs(t, repo.Replace(ctx, &model), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "missing"), gorm.ErrRecordNotFound)
}

func TestBoardRepositoryDeleteRemovesChildRows(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	id := uuid.NewString()
	model := models.NewChildBoard(id, board.SeedChild())
	require.NoError(t, repo.Create(ctx, &model))
	require.NoError(t, repo.Delete(ctx, id))

	var count int64
	require.NoError(t, db.Model(&models.BoardTask{}).Where("board_id = ?", id).Count(&count).Error)
	require.Zero(t, count)
}

func TestBoardRepositoryExists(t *testing.T) {
	repo := NewBoardRepository(setupBoardTestDB(t))
	ctx := context.Background()

	found, err := repo.Exists(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	id := uuid.NewString()
	model := models.NewParentBoard(id, board.SeedParent())
	require.NoError(t, repo.Create(ctx, &model))

	found, err = repo.Exists(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
}

func TestBoardRepositoryRoundTripsChildWishes(t *testing.T) {
	repo := NewBoardRepository(setupBoardTestDB(t))
	ctx := context.Background()

	id := uuid.NewString()
	seed := board.SeedChild()
	model := models.NewChildBoard(id, seed)
	require.NoError(t, repo.Create(ctx, &model))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, seed, stored.ChildState())

	next := board.ReduceChild(seed, board.CompleteTask{TaskID: 1})
	next = board.ReduceChild(next, board.AddWish{Title: "Zoo trip", Cost: 30})
	next = board.ReduceChild(next, board.AddWish{Title: "Sticker", Cost: 5})
	updated := models.NewChildBoard(id, next)
	require.NoError(t, repo.Replace(ctx, &updated))

	reloaded, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	state := reloaded.ChildState()
	require.Equal(t, next.Wishes, state.Wishes)
	require.Equal(t, 15, state.Summary().PointsAvailable)
}
