package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/kidtask-api/internal/board"
)

// DashboardRegistry dispatches role-agnostic board requests to the matching dashboard service.
type DashboardRegistry struct {
	Child   ChildDashboardService
	Parent  ParentDashboardService
	Teacher TeacherDashboardService
}

// Mount seeds a new board for the named role.
func (r DashboardRegistry) Mount(ctx context.Context, role string) (interface{}, error) {
	parsed, err := board.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	switch parsed {
	case board.RoleChild:
		return r.Child.Create(ctx)
	case board.RoleParent:
		return r.Parent.Create(ctx)
	default:
		return r.Teacher.Create(ctx)
	}
}
