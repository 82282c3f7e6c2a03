package board

import (
	"errors"
	"strings"
)

// ErrUnknownView is returned when a navigation entry does not exist on a screen.
var ErrUnknownView = errors.New("unknown view")

// ParentView is the active panel of the parent dashboard.
type ParentView string

const (
	ParentShowTasks      ParentView = "show-tasks"
	ParentApprovalCenter ParentView = "approval-center"
	ParentAssignTask     ParentView = "assign-task"
	ParentAchievements   ParentView = "achievements"
	ParentSchedule       ParentView = "schedule"
)

// DefaultParentView is the panel shown when a parent board is mounted.
const DefaultParentView = ParentAssignTask

// ParentViews lists the parent navigation entries in sidebar order.
func ParentViews() []ParentView {
	return []ParentView{ParentShowTasks, ParentApprovalCenter, ParentAssignTask, ParentAchievements, ParentSchedule}
}

// ParseParentView maps a navigation tag onto a parent view.
func ParseParentView(tag string) (ParentView, error) {
	normalized := ParentView(strings.ToLower(strings.TrimSpace(tag)))
	for _, view := range ParentViews() {
		if view == normalized {
			return view, nil
		}
	}
	return "", ErrUnknownView
}

// Label is the sidebar caption for the view.
func (v ParentView) Label() string {
	return RenderParent(v, parentLabels{})
}

// ParentPanels renders one value per parent view. Adding a view adds a method
// here, so every renderer stops compiling until it handles the new panel.
type ParentPanels[T any] interface {
	ShowTasks() T
	ApprovalCenter() T
	AssignTask() T
	Achievements() T
	Schedule() T
}

// RenderParent dispatches to the panel matching v. A value outside the closed
// set, such as the empty view of a row stored before views existed, renders
// the default panel.
func RenderParent[T any](v ParentView, panels ParentPanels[T]) T {
	switch v {
	case ParentShowTasks:
		return panels.ShowTasks()
	case ParentApprovalCenter:
		return panels.ApprovalCenter()
	case ParentAssignTask:
		return panels.AssignTask()
	case ParentAchievements:
		return panels.Achievements()
	case ParentSchedule:
		return panels.Schedule()
	default:
		return RenderParent(DefaultParentView, panels)
	}
}

type parentLabels struct{}

func (parentLabels) ShowTasks() string      { return "Show Tasks" }
func (parentLabels) ApprovalCenter() string { return "Approval Center" }
func (parentLabels) AssignTask() string     { return "Assign New Task" }
func (parentLabels) Achievements() string   { return "Add Achievements" }
func (parentLabels) Schedule() string       { return "Schedule" }

// TeacherView is the active panel of the teacher dashboard.
type TeacherView string

const (
	TeacherAddTask   TeacherView = "add-task"
	TeacherSchedule  TeacherView = "schedule"
	TeacherRateTasks TeacherView = "rate-tasks"
)

// DefaultTeacherView is the panel shown when a teacher board is mounted.
const DefaultTeacherView = TeacherAddTask

// TeacherViews lists the teacher navigation entries in sidebar order.
func TeacherViews() []TeacherView {
	return []TeacherView{TeacherAddTask, TeacherSchedule, TeacherRateTasks}
}

// ParseTeacherView maps a navigation tag onto a teacher view.
func ParseTeacherView(tag string) (TeacherView, error) {
	normalized := TeacherView(strings.ToLower(strings.TrimSpace(tag)))
	for _, view := range TeacherViews() {
		if view == normalized {
			return view, nil
		}
	}
	return "", ErrUnknownView
}

// Label is the sidebar caption for the view.
func (v TeacherView) Label() string {
	return RenderTeacher(v, teacherLabels{})
}

// TeacherPanels renders one value per teacher view.
type TeacherPanels[T any] interface {
	AddTask() T
	Schedule() T
	RateTasks() T
}

// RenderTeacher dispatches to the panel matching v. A value outside the closed
// set renders the default panel.
func RenderTeacher[T any](v TeacherView, panels TeacherPanels[T]) T {
	switch v {
	case TeacherAddTask:
		return panels.AddTask()
	case TeacherSchedule:
		return panels.Schedule()
	case TeacherRateTasks:
		return panels.RateTasks()
	default:
		return RenderTeacher(DefaultTeacherView, panels)
	}
}

type teacherLabels struct{}

func (teacherLabels) AddTask() string   { return "Add School Task" }
func (teacherLabels) Schedule() string  { return "View Schedule" }
func (teacherLabels) RateTasks() string { return "Rate Tasks" }
