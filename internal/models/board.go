package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/noah-isme/kidtask-api/internal/board"
)

// BoardHeader stores the seeded header card of any dashboard role.
type BoardHeader struct {
	Child   *board.ChildProfile `json:"child,omitempty"`
	Parent  *ParentHeader       `json:"parent,omitempty"`
	Teacher *board.ClassInfo    `json:"teacher,omitempty"`
}

// ParentHeader is the seeded parent header card.
type ParentHeader struct {
	DailyProgress int `json:"daily_progress"`
}

// Board is one mounted dashboard screen and its local state.
type Board struct {
	ID               string                                    `gorm:"primaryKey;size:36" json:"id"`
	Role             string                                    `gorm:"size:16;not null;index" json:"role"`
	View             string                                    `gorm:"size:32" json:"view"`
	Header           datatypes.JSONType[BoardHeader]           `json:"header"`
	TaskDraft        datatypes.JSONType[board.TaskDraft]        `json:"task_draft"`
	AchievementDraft datatypes.JSONType[board.AchievementDraft] `json:"achievement_draft"`
	CreatedAt        time.Time                                 `json:"created_at"`
	UpdatedAt        time.Time                                 `json:"updated_at"`
	Tasks            []BoardTask                               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tasks"`
	Reviews          []BoardReview                             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"reviews"`
	Ratings          []BoardRating                             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ratings"`
	Achievements     []BoardAchievement                        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"achievements"`
	Wishes           []BoardWish                               `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"wishes"`
}

// BoardTask is a child task row.
type BoardTask struct {
	BoardID   string `gorm:"primaryKey;size:36" json:"board_id"`
	TaskID    int    `gorm:"primaryKey;autoIncrement:false" json:"task_id"`
	Position  int    `gorm:"not null" json:"position"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Points    int    `gorm:"not null" json:"points"`
	Completed bool   `gorm:"not null" json:"completed"`
}

// BoardReview is a parent approval-center row.
type BoardReview struct {
	BoardID       string `gorm:"primaryKey;size:36" json:"board_id"`
	SubmissionID  int    `gorm:"primaryKey;autoIncrement:false" json:"submission_id"`
	Position      int    `gorm:"not null" json:"position"`
	ChildName     string `gorm:"size:255;not null" json:"child_name"`
	TaskTitle     string `gorm:"size:255;not null" json:"task_title"`
	SubmittedDate string `gorm:"size:10" json:"submitted_date"`
	Status        string `gorm:"size:16;not null" json:"status"`
}

// BoardRating is a teacher rate-tasks row.
type BoardRating struct {
	BoardID       string `gorm:"primaryKey;size:36" json:"board_id"`
	SubmissionID  int    `gorm:"primaryKey;autoIncrement:false" json:"submission_id"`
	Position      int    `gorm:"not null" json:"position"`
	StudentName   string `gorm:"size:255;not null" json:"student_name"`
	TaskTitle     string `gorm:"size:255;not null" json:"task_title"`
	SubmittedDate string `gorm:"size:10" json:"submitted_date"`
	Stars         int    `gorm:"not null" json:"stars"`
}

// BoardAchievement is a parent achievement row.
type BoardAchievement struct {
	BoardID       string `gorm:"primaryKey;size:36" json:"board_id"`
	AchievementID int    `gorm:"primaryKey;autoIncrement:false" json:"achievement_id"`
	Position      int    `gorm:"not null" json:"position"`
	Title         string `gorm:"size:255;not null" json:"title"`
	Description   string `gorm:"size:500" json:"description"`
	Reward        string `gorm:"size:255" json:"reward"`
}

// BoardWish is a child wish row.
type BoardWish struct {
	BoardID  string `gorm:"primaryKey;size:36" json:"board_id"`
	WishID   int    `gorm:"primaryKey;autoIncrement:false" json:"wish_id"`
	Position int    `gorm:"not null" json:"position"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Cost     int    `gorm:"not null" json:"cost"`
	Status   string `gorm:"size:16;not null" json:"status"`
}

// BoardModels lists the tables backing the board store, for migrations.
func BoardModels() []interface{} {
	return []interface{}{&Board{}, &BoardTask{}, &BoardReview{}, &BoardRating{}, &BoardAchievement{}, &BoardWish{}, &BoardActivity{}}
}

// NewChildBoard converts a child snapshot into its storage row.
func NewChildBoard(id string, state board.ChildState) Board {
	profile := state.Profile
	model := Board{
		ID:     id,
		Role:   string(board.RoleChild),
		Header: datatypes.NewJSONType(BoardHeader{Child: &profile}),
		Tasks:  make([]BoardTask, 0, len(state.Tasks)),
		Wishes: make([]BoardWish, 0, len(state.Wishes)),
	}
	for i, task := range state.Tasks {
		model.Tasks = append(model.Tasks, BoardTask{
			BoardID:   id,
			TaskID:    task.ID,
			Position:  i,
			Title:     task.Title,
			Points:    task.Points,
			Completed: task.Completed,
		})
	}
	for i, wish := range state.Wishes {
		model.Wishes = append(model.Wishes, BoardWish{
			BoardID:  id,
			WishID:   wish.ID,
			Position: i,
			Title:    wish.Title,
			Cost:     wish.Cost,
			Status:   string(wish.Status),
		})
	}
	return model
}

// ChildState rebuilds the child snapshot from the storage row.
func (b Board) ChildState() board.ChildState {
	state := board.ChildState{Tasks: make([]board.Task, 0, len(b.Tasks))}
	if header := b.Header.Data(); header.Child != nil {
		state.Profile = *header.Child
	}
	for _, task := range b.Tasks {
		state.Tasks = append(state.Tasks, board.Task{
			ID:        task.TaskID,
			Title:     task.Title,
			Points:    task.Points,
			Completed: task.Completed,
		})
	}
	for _, wish := range b.Wishes {
		state.Wishes = append(state.Wishes, board.Wish{
			ID:     wish.WishID,
			Title:  wish.Title,
			Cost:   wish.Cost,
			Status: board.WishStatus(wish.Status),
		})
	}
	return state
}

// NewParentBoard converts a parent snapshot into its storage row.
func NewParentBoard(id string, state board.ParentState) Board {
	model := Board{
		ID:               id,
		Role:             string(board.RoleParent),
		View:             string(state.View),
		Header:           datatypes.NewJSONType(BoardHeader{Parent: &ParentHeader{DailyProgress: state.DailyProgress}}),
		TaskDraft:        datatypes.NewJSONType(state.TaskDraft),
		AchievementDraft: datatypes.NewJSONType(state.AchievementDraft),
		Reviews:          make([]BoardReview, 0, len(state.Reviews)),
		Achievements:     make([]BoardAchievement, 0, len(state.Achievements)),
	}
	for i, review := range state.Reviews {
		model.Reviews = append(model.Reviews, BoardReview{
			BoardID:       id,
			SubmissionID:  review.ID,
			Position:      i,
			ChildName:     review.ChildName,
			TaskTitle:     review.TaskTitle,
			SubmittedDate: review.SubmittedDate,
			Status:        string(review.Status),
		})
	}
	for i, achievement := range state.Achievements {
		model.Achievements = append(model.Achievements, BoardAchievement{
			BoardID:       id,
			AchievementID: achievement.ID,
			Position:      i,
			Title:         achievement.Title,
			Description:   achievement.Description,
			Reward:        achievement.Reward,
		})
	}
	return model
}

// ParentState rebuilds the parent snapshot from the storage row.
func (b Board) ParentState() board.ParentState {
	state := board.ParentState{
		View:             board.ParentView(b.View),
		TaskDraft:        b.TaskDraft.Data(),
		AchievementDraft: b.AchievementDraft.Data(),
		Reviews:          make([]board.Review, 0, len(b.Reviews)),
		Achievements:     make([]board.Achievement, 0, len(b.Achievements)),
	}
	if header := b.Header.Data(); header.Parent != nil {
		state.DailyProgress = header.Parent.DailyProgress
	}
	for _, review := range b.Reviews {
		state.Reviews = append(state.Reviews, board.Review{
			ID:            review.SubmissionID,
			ChildName:     review.ChildName,
			TaskTitle:     review.TaskTitle,
			SubmittedDate: review.SubmittedDate,
			Status:        board.ReviewStatus(review.Status),
		})
	}
	for _, achievement := range b.Achievements {
		state.Achievements = append(state.Achievements, board.Achievement{
			ID:          achievement.AchievementID,
			Title:       achievement.Title,
			Description: achievement.Description,
			Reward:      achievement.Reward,
		})
	}
	return state
}

// NewTeacherBoard converts a teacher snapshot into its storage row.
func NewTeacherBoard(id string, state board.TeacherState) Board {
	class := state.Class
	model := Board{
		ID:        id,
		Role:      string(board.RoleTeacher),
		View:      string(state.View),
		Header:    datatypes.NewJSONType(BoardHeader{Teacher: &class}),
		TaskDraft: datatypes.NewJSONType(state.TaskDraft),
		Ratings:   make([]BoardRating, 0, len(state.Ratings)),
	}
	for i, rating := range state.Ratings {
		model.Ratings = append(model.Ratings, BoardRating{
			BoardID:       id,
			SubmissionID:  rating.ID,
			Position:      i,
			StudentName:   rating.StudentName,
			TaskTitle:     rating.TaskTitle,
			SubmittedDate: rating.SubmittedDate,
			Stars:         rating.Stars,
		})
	}
	return model
}

// TeacherState rebuilds the teacher snapshot from the storage row.
func (b Board) TeacherState() board.TeacherState {
	state := board.TeacherState{
		View:      board.TeacherView(b.View),
		TaskDraft: b.TaskDraft.Data(),
		Ratings:   make([]board.Rating, 0, len(b.Ratings)),
	}
	if header := b.Header.Data(); header.Teacher != nil {
		state.Class = *header.Teacher
	}
	for _, rating := range b.Ratings {
		state.Ratings = append(state.Ratings, board.Rating{
			ID:            rating.SubmissionID,
			StudentName:   rating.StudentName,
			TaskTitle:     rating.TaskTitle,
			SubmittedDate: rating.SubmittedDate,
			Stars:         rating.Stars,
		})
	}
	return state
}
