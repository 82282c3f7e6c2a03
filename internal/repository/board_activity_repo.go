package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/kidtask-api/internal/models"
)

// BoardActivityFilter narrows board activity queries.
type BoardActivityFilter struct {
	BoardID  string
	Action   string
	Page     int
	PageSize int
}

// BoardActivityRepository persists the audit trail of board actions.
type BoardActivityRepository interface {
	Create(ctx context.Context, entry *models.BoardActivity) error
	List(ctx context.Context, filter BoardActivityFilter) ([]models.BoardActivity, int64, error)
}

type boardActivityRepository struct {
	db *gorm.DB
}

// NewBoardActivityRepository constructs the board activity repository.
func NewBoardActivityRepository(db *gorm.DB) BoardActivityRepository {
	return &boardActivityRepository{db: db}
}

func (r *boardActivityRepository) Create(ctx context.Context, entry *models.BoardActivity) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *boardActivityRepository) List(ctx context.Context, filter BoardActivityFilter) ([]models.BoardActivity, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BoardActivity{}).Where("board_id = ?", filter.BoardID)

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entries []models.BoardActivity
	if err := query.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
