package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/kidtask-api/internal/models"
)

// BoardRepository defines data operations for mounted dashboard boards.
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	GetByID(ctx context.Context, id string) (models.Board, error)
	Exists(ctx context.Context, id string) (bool, error)
	Replace(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id string) error
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository instantiates the repository.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *boardRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Board{}).
		Preload("Tasks", byPosition).
		Preload("Reviews", byPosition).
		Preload("Ratings", byPosition).
		Preload("Achievements", byPosition).
		Preload("Wishes", byPosition)
}

func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (models.Board, error) {
	var board models.Board
	if err := r.baseQuery(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		return models.Board{}, err
	}

	return board, nil
}

// Exists reports whether a board row is stored, without loading its child rows.
func (r *boardRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Board{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Replace overwrites the board row and all of its child rows in one transaction.
func (r *boardRepository) Replace(ctx context.Context, board *models.Board) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Board{}).
			Where("id = ?", board.ID).
			Select("view", "header", "task_draft", "achievement_draft", "updated_at").
			Omit(clause.Associations).
			Updates(board)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := replaceChildren(tx, board.ID, &models.BoardTask{}, board.Tasks); err != nil {
			return err
		}
		if err := replaceChildren(tx, board.ID, &models.BoardReview{}, board.Reviews); err != nil {
			return err
		}
		if err := replaceChildren(tx, board.ID, &models.BoardRating{}, board.Ratings); err != nil {
			return err
		}
		if err := replaceChildren(tx, board.ID, &models.BoardAchievement{}, board.Achievements); err != nil {
			return err
		}
		return replaceChildren(tx, board.ID, &models.BoardWish{}, board.Wishes)
	})
}

func replaceChildren[T any](tx *gorm.DB, boardID string, model *T, rows []T) error {
	if err := tx.Where("board_id = ?", boardID).Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func (r *boardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&models.BoardTask{}, &models.BoardReview{}, &models.BoardRating{}, &models.BoardAchievement{}, &models.BoardWish{}, &models.BoardActivity{}} {
			if err := tx.Where("board_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&models.Board{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
