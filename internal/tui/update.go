package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noah-isme/kidtask-api/internal/board"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenRoles:
			return m.updateRoles(msg)
		case screenChild:
			return m.updateChild(msg)
		case screenParent:
			return m.updateParent(msg)
		case screenTeacher:
			return m.updateTeacher(msg)
		}
	}
	return m, nil
}

func (m Model) updateRoles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.roleCursor = clamp(m.roleCursor-1, len(m.roles))
	case "down", "j":
		m.roleCursor = clamp(m.roleCursor+1, len(m.roles))
	case "1", "2", "3":
		index, _ := strconv.Atoi(msg.String())
		if index <= len(m.roles) {
			m.roleCursor = index - 1
			return m.mount(m.roles[m.roleCursor]), nil
		}
	case "enter":
		return m.mount(m.roles[m.roleCursor]), nil
	}
	return m, nil
}

func (m Model) updateChild(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wishing {
		return m.updateWishForm(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "w":
		m.wishing = true
		m.field = 0
	case "esc":
		m.screen = screenRoles
	case "up", "k":
		m.cursor = clamp(m.cursor-1, len(m.child.Tasks))
	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(m.child.Tasks))
	case "enter", " ":
		if len(m.child.Tasks) == 0 {
			return m, nil
		}
		task := m.child.Tasks[m.cursor]
		m.child = board.ReduceChild(m.child, board.CompleteTask{TaskID: task.ID})
		m.status = "Completed " + task.Title
	}
	return m, nil
}

func (m Model) updateWishForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wishing = false
		return m, nil
	case "up":
		m.field = clamp(m.field-1, len(wishFields))
		return m, nil
	case "down":
		m.field = clamp(m.field+1, len(wishFields))
		return m, nil
	case "enter":
		wish, problem := m.wish.action(m.child.Summary().PointsAvailable)
		if problem != "" {
			m.status = problem
			return m, nil
		}
		m.child = board.ReduceChild(m.child, wish)
		m.logger.Info().Str("title", wish.Title).Int("cost", wish.Cost).Msg("wish added")
		m.status = "Wish added: " + wish.Title
		m.wish = wishDraft{}
		m.wishing = false
		m.field = 0
		return m, nil
	}

	field := wishFields[m.field]
	value, ok := edited(m.wish.value(field), msg.String(), runesOf(msg))
	if !ok {
		return m, nil
	}
	if next, ok := m.wish.with(field, value); ok {
		m.wish = next
	}
	return m, nil
}

func (m Model) updateParent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenRoles
		return m, nil
	case "tab", "shift+tab":
		views := board.ParentViews()
		next := views[cycle(indexOf(views, m.parent.View), len(views), msg.String() == "tab")]
		m.parent = board.ReduceParent(m.parent, board.SelectParentView{View: next})
		return m.resetFocus(), nil
	}

	fields := board.RenderParent[[]string](m.parent.View, parentForms{})
	switch m.parent.View {
	case board.ParentAssignTask:
		return m.updateParentTaskForm(msg, fields)
	case board.ParentAchievements:
		return m.updateAchievementForm(msg, fields)
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}

	if m.parent.View != board.ParentApprovalCenter {
		return m, nil
	}

	pending := m.parent.PendingReviews()
	switch msg.String() {
	case "up", "k":
		m.cursor = clamp(m.cursor-1, len(pending))
	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(pending))
	case "a", "r":
		if len(pending) == 0 {
			return m, nil
		}
		review := pending[m.cursor]
		approved := msg.String() == "a"
		m.parent = board.ReduceParent(m.parent, board.ReviewSubmission{SubmissionID: review.ID, Approved: approved})
		m.cursor = clamp(m.cursor, len(m.parent.PendingReviews()))
		if approved {
			m.status = "Approved " + review.TaskTitle
		} else {
			m.status = "Rejected " + review.TaskTitle
		}
	}
	return m, nil
}

func (m Model) updateParentTaskForm(msg tea.KeyMsg, fields []string) (tea.Model, tea.Cmd) {
	m, action, patch := m.taskFormKey(msg, fields, m.parent.TaskDraft)
	switch action {
	case formEdited:
		m.parent = board.ReduceParent(m.parent, board.EditTaskDraft{Patch: patch})
	case formSubmit:
		draft := m.parent.TaskDraft
		if err := m.validate.Struct(draft); err != nil {
			m.status = describeValidation(err)
			return m, nil
		}
		m.logger.Info().Str("role", string(board.RoleParent)).Str("title", draft.Title).Msg("task assigned")
		m.parent = board.ReduceParent(m.parent, board.SubmitTaskDraft{})
		m.status = "Task assigned: " + draft.Title
		m.field = 0
	}
	return m, nil
}

func (m Model) updateAchievementForm(msg tea.KeyMsg, fields []string) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.field = clamp(m.field-1, len(fields))
		return m, nil
	case "down":
		m.field = clamp(m.field+1, len(fields))
		return m, nil
	case "enter":
		draft := m.parent.AchievementDraft
		if err := m.validate.Struct(draft); err != nil {
			m.status = describeValidation(err)
			return m, nil
		}
		m.parent = board.ReduceParent(m.parent, board.SubmitAchievementDraft{})
		m.status = "Achievement added: " + draft.Title
		m.field = 0
		return m, nil
	}

	field := fields[m.field]
	value, ok := edited(achievementFieldValue(m.parent.AchievementDraft, field), msg.String(), runesOf(msg))
	if ok {
		m.parent = board.ReduceParent(m.parent, board.EditAchievementDraft{Patch: achievementFieldPatch(field, value)})
	}
	return m, nil
}

func (m Model) updateTeacher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenRoles
		return m, nil
	case "tab", "shift+tab":
		views := board.TeacherViews()
		next := views[cycle(indexOf(views, m.teacher.View), len(views), msg.String() == "tab")]
		m.teacher = board.ReduceTeacher(m.teacher, board.SelectTeacherView{View: next})
		return m.resetFocus(), nil
	}

	if fields := board.RenderTeacher[[]string](m.teacher.View, teacherForms{}); fields != nil {
		var (
			action formAction
			patch  board.TaskDraftPatch
		)
		m, action, patch = m.taskFormKey(msg, fields, m.teacher.TaskDraft)
		switch action {
		case formEdited:
			m.teacher = board.ReduceTeacher(m.teacher, board.EditTaskDraft{Patch: patch})
		case formSubmit:
			draft := m.teacher.TaskDraft
			if err := m.validate.Struct(draft); err != nil {
				m.status = describeValidation(err)
				return m, nil
			}
			m.logger.Info().Str("role", string(board.RoleTeacher)).Str("title", draft.Title).Msg("task assigned")
			m.teacher = board.ReduceTeacher(m.teacher, board.SubmitTaskDraft{})
			m.status = "Task added: " + draft.Title
			m.field = 0
		}
		return m, nil
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}

	if m.teacher.View != board.TeacherRateTasks {
		return m, nil
	}

	switch key := msg.String(); key {
	case "up", "k":
		m.cursor = clamp(m.cursor-1, len(m.teacher.Ratings))
	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(m.teacher.Ratings))
	case "1", "2", "3", "4", "5":
		if len(m.teacher.Ratings) == 0 {
			return m, nil
		}
		stars, _ := strconv.Atoi(key)
		rating := m.teacher.Ratings[m.cursor]
		m.teacher = board.ReduceTeacher(m.teacher, board.RateSubmission{SubmissionID: rating.ID, Stars: stars})
		m.status = "Rated " + rating.StudentName + " " + strconv.Itoa(stars) + "/5"
	}
	return m, nil
}

type formAction int

const (
	formNone formAction = iota
	formMoved
	formEdited
	formSubmit
)

// taskFormKey interprets a key press on a task form.
func (m Model) taskFormKey(msg tea.KeyMsg, fields []string, draft board.TaskDraft) (Model, formAction, board.TaskDraftPatch) {
	switch msg.String() {
	case "up":
		m.field = clamp(m.field-1, len(fields))
		return m, formMoved, board.TaskDraftPatch{}
	case "down":
		m.field = clamp(m.field+1, len(fields))
		return m, formMoved, board.TaskDraftPatch{}
	case "enter":
		return m, formSubmit, board.TaskDraftPatch{}
	}

	field := fields[m.field]
	value, ok := edited(taskFieldValue(draft, field), msg.String(), runesOf(msg))
	if !ok {
		return m, formNone, board.TaskDraftPatch{}
	}
	patch, ok := taskFieldPatch(field, value)
	if !ok {
		return m, formNone, board.TaskDraftPatch{}
	}
	return m, formEdited, patch
}

func runesOf(msg tea.KeyMsg) []rune {
	if msg.Type != tea.KeyRunes {
		return nil
	}
	return msg.Runes
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func cycle(i, n int, forward bool) int {
	if forward {
		return (i + 1) % n
	}
	return (i - 1 + n) % n
}

func indexOf[T comparable](items []T, target T) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return 0
}
