package models

import (
	"time"

	"gorm.io/datatypes"
)

// BoardActivity is one entry of a board's audit trail.
type BoardActivity struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	BoardID   string            `gorm:"size:36;not null;index" json:"board_id"`
	Role      string            `gorm:"size:16;not null" json:"role"`
	Action    string            `gorm:"size:64;not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
