package dto

import (
	"time"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/models"
)

// PaginationMeta captures pagination metadata for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// BoardActivityListRequest defines filters for a board's audit trail.
type BoardActivityListRequest struct {
	Page     int
	PageSize int
	Action   string
}

// BoardActivityResponse serializes one audit trail entry.
type BoardActivityResponse struct {
	ID        uint                   `json:"id"`
	BoardID   string                 `json:"board_id"`
	Role      board.Role             `json:"role"`
	Action    string                 `json:"action"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// BoardActivityListResponse wraps a page of audit trail entries.
type BoardActivityListResponse struct {
	Items      []BoardActivityResponse `json:"items"`
	Pagination PaginationMeta          `json:"pagination"`
}

// BoardEvent is pushed to stream subscribers after every change to a board.
type BoardEvent struct {
	BoardID    string                 `json:"board_id"`
	Role       board.Role             `json:"role"`
	Action     string                 `json:"action"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewBoardActivityResponse converts a stored entry into its DTO.
func NewBoardActivityResponse(entry models.BoardActivity) BoardActivityResponse {
	metadata := map[string]interface{}(entry.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return BoardActivityResponse{
		ID:        entry.ID,
		BoardID:   entry.BoardID,
		Role:      board.Role(entry.Role),
		Action:    entry.Action,
		Metadata:  metadata,
		CreatedAt: entry.CreatedAt,
	}
}
