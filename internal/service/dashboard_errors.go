package service

import "errors"

var (
	// ErrBoardNotFound indicates the board id is unknown or belongs to another role.
	ErrBoardNotFound = errors.New("dashboard board not found")
	// ErrInvalidView indicates a view mode outside the dashboard's closed set.
	ErrInvalidView = errors.New("invalid dashboard view")
	// ErrUnknownRole indicates a role other than child, parent or teacher.
	ErrUnknownRole = errors.New("unknown dashboard role")
	// ErrInsufficientPoints indicates a wish costing more than the child has left.
	ErrInsufficientPoints = errors.New("not enough points for this wish")
)
