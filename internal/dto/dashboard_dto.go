package dto

import "github.com/noah-isme/kidtask-api/internal/board"

const (
	childPanelTitle        = "My Tasks"
	placeholderTasks       = "Task list view coming soon..."
	placeholderSchedule    = "Schedule view coming soon..."
	approvalCenterEmptyMsg = "All caught up! No pending submissions."
)

// NavEntry is one sidebar navigation button.
type NavEntry struct {
	View   string `json:"view"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Panel is the rendered main content area of a dashboard.
type Panel struct {
	View             string                  `json:"view"`
	Title            string                  `json:"title"`
	Placeholder      string                  `json:"placeholder,omitempty"`
	EmptyMessage     string                  `json:"empty_message,omitempty"`
	Tasks            []board.Task            `json:"tasks,omitempty"`
	Reviews          []board.Review          `json:"reviews,omitempty"`
	Ratings          []board.Rating          `json:"ratings,omitempty"`
	Achievements     []board.Achievement     `json:"achievements,omitempty"`
	Wishes           []board.Wish            `json:"wishes,omitempty"`
	TaskDraft        *board.TaskDraft        `json:"task_draft,omitempty"`
	AchievementDraft *board.AchievementDraft `json:"achievement_draft,omitempty"`
}

// ChildBoardResponse renders a child dashboard.
type ChildBoardResponse struct {
	ID      string             `json:"id"`
	Role    board.Role         `json:"role"`
	Summary board.ChildSummary `json:"summary"`
	Panel   Panel              `json:"panel"`
}

// ParentBoardResponse renders a parent dashboard.
type ParentBoardResponse struct {
	ID      string              `json:"id"`
	Role    board.Role          `json:"role"`
	View    board.ParentView    `json:"view"`
	Summary board.ParentSummary `json:"summary"`
	Nav     []NavEntry          `json:"nav"`
	Panel   Panel               `json:"panel"`
}

// TeacherBoardResponse renders a teacher dashboard.
type TeacherBoardResponse struct {
	ID      string               `json:"id"`
	Role    board.Role           `json:"role"`
	View    board.TeacherView    `json:"view"`
	Summary board.TeacherSummary `json:"summary"`
	Nav     []NavEntry           `json:"nav"`
	Panel   Panel                `json:"panel"`
}

// SelectViewRequest switches the active panel.
type SelectViewRequest struct {
	View string `json:"view" validate:"required"`
}

// RatingRequest rates a teacher submission.
type RatingRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5"`
}

// WishRequest buys a wish with the child's available points.
type WishRequest struct {
	Title string `json:"title" validate:"required,max=255"`
	Cost  int    `json:"cost" validate:"required,min=1,max=10000"`
}

// TaskDraftRequest edits any subset of the task-assignment form.
type TaskDraftRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Points      *int    `json:"points"`
}

// Patch converts the request into a draft patch.
func (r TaskDraftRequest) Patch() board.TaskDraftPatch {
	return board.TaskDraftPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Points:      r.Points,
	}
}

// AchievementDraftRequest edits any subset of the achievement form.
type AchievementDraftRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Reward      *string `json:"reward"`
}

// Patch converts the request into a draft patch.
func (r AchievementDraftRequest) Patch() board.AchievementDraftPatch {
	return board.AchievementDraftPatch{
		Title:       r.Title,
		Description: r.Description,
		Reward:      r.Reward,
	}
}

// NewChildBoardResponse renders the child snapshot.
func NewChildBoardResponse(id string, state board.ChildState) ChildBoardResponse {
	return ChildBoardResponse{
		ID:      id,
		Role:    board.RoleChild,
		Summary: state.Summary(),
		Panel: Panel{
			View:  "my-tasks",
			Title: childPanelTitle,
			Tasks:  state.Tasks,
			Wishes: state.Wishes,
		},
	}
}

// NewParentBoardResponse renders the parent snapshot with its active panel.
func NewParentBoardResponse(id string, state board.ParentState) ParentBoardResponse {
	nav := make([]NavEntry, 0, len(board.ParentViews()))
	for _, view := range board.ParentViews() {
		nav = append(nav, NavEntry{View: string(view), Label: view.Label(), Active: view == state.View})
	}

	return ParentBoardResponse{
		ID:      id,
		Role:    board.RoleParent,
		View:    state.View,
		Summary: state.Summary(),
		Nav:     nav,
		Panel:   board.RenderParent[Panel](state.View, parentPanels{state: state}),
	}
}

// NewTeacherBoardResponse renders the teacher snapshot with its active panel.
func NewTeacherBoardResponse(id string, state board.TeacherState) TeacherBoardResponse {
	nav := make([]NavEntry, 0, len(board.TeacherViews()))
	for _, view := range board.TeacherViews() {
		nav = append(nav, NavEntry{View: string(view), Label: view.Label(), Active: view == state.View})
	}

	return TeacherBoardResponse{
		ID:      id,
		Role:    board.RoleTeacher,
		View:    state.View,
		Summary: state.Summary(),
		Nav:     nav,
		Panel:   board.RenderTeacher[Panel](state.View, teacherPanels{state: state}),
	}
}

type parentPanels struct {
	state board.ParentState
}

func (p parentPanels) ShowTasks() Panel {
	return Panel{View: string(board.ParentShowTasks), Title: "Current Tasks", Placeholder: placeholderTasks}
}

func (p parentPanels) ApprovalCenter() Panel {
	panel := Panel{View: string(board.ParentApprovalCenter), Title: "Approval Center"}
	panel.Reviews = p.state.PendingReviews()
	if len(panel.Reviews) == 0 {
		panel.EmptyMessage = approvalCenterEmptyMsg
	}
	return panel
}

func (p parentPanels) AssignTask() Panel {
	draft := p.state.TaskDraft
	return Panel{View: string(board.ParentAssignTask), Title: "Assign New Task", TaskDraft: &draft}
}

func (p parentPanels) Achievements() Panel {
	draft := p.state.AchievementDraft
	return Panel{
		View:             string(board.ParentAchievements),
		Title:            "Achievement System",
		AchievementDraft: &draft,
		Achievements:     p.state.Achievements,
	}
}

func (p parentPanels) Schedule() Panel {
	return Panel{View: string(board.ParentSchedule), Title: "Family Schedule", Placeholder: placeholderSchedule}
}

type teacherPanels struct {
	state board.TeacherState
}

func (p teacherPanels) AddTask() Panel {
	draft := p.state.TaskDraft
	return Panel{View: string(board.TeacherAddTask), Title: "Add School Task", TaskDraft: &draft}
}

func (p teacherPanels) Schedule() Panel {
	return Panel{View: string(board.TeacherSchedule), Title: "Class Schedule", Placeholder: placeholderSchedule}
}

func (p teacherPanels) RateTasks() Panel {
	return Panel{View: string(board.TeacherRateTasks), Title: "Rate Student Submissions", Ratings: p.state.Ratings}
}

// MountBoardRequest mounts a board for any role.
type MountBoardRequest struct {
	Role string `json:"role" validate:"required"`
}
