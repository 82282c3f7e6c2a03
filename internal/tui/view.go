package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/kidtask-api/internal/board"
	"github.com/noah-isme/kidtask-api/internal/dto"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(22)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).Width(56)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenChild:
		body = m.childView()
	case screenParent:
		body = m.parentView()
	case screenTeacher:
		body = m.teacherView()
	default:
		body = m.rolesView()
	}

	if m.status != "" {
		body += "\n" + statusStyle.Render(m.status)
	}
	return body + "\n" + dimStyle.Render(m.help()) + "\n"
}

func (m Model) rolesView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("KidTask") + "\n\n")
	b.WriteString("Choose a dashboard:\n\n")
	for i, role := range m.roles {
		line := fmt.Sprintf("%d. %s", i+1, roleTitle(role))
		if i == m.roleCursor {
			line = selectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) childView() string {
	rendered := dto.NewChildBoardResponse("", m.child)
	s := rendered.Summary
	header := cardStyle.Render(fmt.Sprintf(
		"%s\nLevel %d  ·  %d%% to next level\nTasks %d/%d  ·  Points %d (%d left)  ·  Achievements %d/%d",
		titleStyle.Render("My Dashboard"),
		s.Level, s.LevelProgress,
		s.CompletedTasks, s.TotalTasks, s.PointsEarned, s.PointsAvailable,
		s.AchievementsEarned, s.AchievementsTotal,
	))
	sections := []string{header, panelStyle.Render(m.renderPanel(rendered.Panel))}
	if m.wishing || len(m.child.Wishes) > 0 {
		sections = append(sections, panelStyle.Render(m.wishPanel()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) wishPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Wishes") + "\n")
	if m.wishing {
		b.WriteString("\n")
		for i, field := range wishFields {
			b.WriteString(m.input(i, field, m.wish.value(field)) + "\n")
		}
	}
	for _, wish := range m.child.Wishes {
		b.WriteString(fmt.Sprintf("♥ %s  (%d pts) %s\n", wish.Title, wish.Cost, dimStyle.Render(string(wish.Status))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) parentView() string {
	rendered := dto.NewParentBoardResponse("", m.parent)
	header := cardStyle.Render(fmt.Sprintf(
		"%s\nDaily progress %d%%  ·  Pending reviews %d",
		titleStyle.Render("Parent Dashboard"),
		rendered.Summary.DailyProgress, rendered.Summary.PendingReviews,
	))
	main := lipgloss.JoinHorizontal(lipgloss.Top, renderNav(rendered.Nav), panelStyle.Render(m.renderPanel(rendered.Panel)))
	return lipgloss.JoinVertical(lipgloss.Left, header, main)
}

func (m Model) teacherView() string {
	rendered := dto.NewTeacherBoardResponse("", m.teacher)
	s := rendered.Summary
	header := cardStyle.Render(fmt.Sprintf(
		"%s\nClass %s  ·  %d students  ·  %d%% completion\nRated %d  ·  Average %.2f stars  ·  %d points awarded",
		titleStyle.Render("Teacher Dashboard"),
		s.ClassName, s.TotalStudents, s.CompletionAverage,
		s.RatedSubmissions, s.AverageStars, s.PointsAwarded,
	))
	main := lipgloss.JoinHorizontal(lipgloss.Top, renderNav(rendered.Nav), panelStyle.Render(m.renderPanel(rendered.Panel)))
	return lipgloss.JoinVertical(lipgloss.Left, header, main)
}

func renderNav(entries []dto.NavEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Active {
			lines = append(lines, activeStyle.Render(entry.Label))
			continue
		}
		lines = append(lines, entry.Label)
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPanel(p dto.Panel) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title) + "\n\n")

	if p.Placeholder != "" {
		b.WriteString(dimStyle.Render(p.Placeholder) + "\n")
	}
	if p.EmptyMessage != "" {
		b.WriteString(doneStyle.Render(p.EmptyMessage) + "\n")
	}

	for i, task := range p.Tasks {
		box := "[ ]"
		if task.Completed {
			box = doneStyle.Render("[x]")
		}
		b.WriteString(m.row(i, fmt.Sprintf("%s %s  (%d pts)", box, task.Title, task.Points)) + "\n")
	}
	for i, review := range p.Reviews {
		b.WriteString(m.row(i, fmt.Sprintf("%s · %s · %s", review.ChildName, review.TaskTitle, review.SubmittedDate)) + "\n")
	}
	for i, rating := range p.Ratings {
		b.WriteString(m.row(i, fmt.Sprintf("%s · %s  %s", rating.StudentName, rating.TaskTitle, stars(rating.Stars))) + "\n")
	}

	if p.TaskDraft != nil {
		for i, field := range taskFields {
			b.WriteString(m.input(i, field, taskFieldValue(*p.TaskDraft, field)) + "\n")
		}
	}
	if p.AchievementDraft != nil {
		for i, field := range achievementFields {
			b.WriteString(m.input(i, field, achievementFieldValue(*p.AchievementDraft, field)) + "\n")
		}
	}
	if len(p.Achievements) > 0 {
		b.WriteString("\n" + titleStyle.Render("Active Achievements") + "\n")
		for _, achievement := range p.Achievements {
			b.WriteString(fmt.Sprintf("★ %s · %s\n  %s\n", achievement.Title, achievement.Reward, dimStyle.Render(achievement.Description)))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) row(i int, text string) string {
	if i == m.cursor {
		return selectedStyle.Render("› " + text)
	}
	return "  " + text
}

func (m Model) input(i int, field, value string) string {
	label := fieldLabels[field]
	if i == m.field {
		return selectedStyle.Render("› "+label+": ") + value + "█"
	}
	return "  " + label + ": " + value
}

func stars(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", board.MaxStars-n)
}

func roleTitle(role board.Role) string {
	switch role {
	case board.RoleChild:
		return "Child"
	case board.RoleParent:
		return "Parent"
	default:
		return "Teacher"
	}
}

func (m Model) help() string {
	switch m.screen {
	case screenChild:
		if m.wishing {
			return "type to edit · ↑/↓ field · enter buy wish · esc back"
		}
		return "↑/↓ select · enter complete · w add wish · esc roles · q quit"
	case screenParent:
		return board.RenderParent(m.parent.View, parentHelp{})
	case screenTeacher:
		return board.RenderTeacher(m.teacher.View, teacherHelp{})
	default:
		return "↑/↓ select · enter open · q quit"
	}
}

const (
	navHelp  = "tab/shift+tab switch view · esc roles"
	formHelp = "type to edit · ↑/↓ field · enter submit · " + navHelp
)

type parentHelp struct{}

func (parentHelp) ShowTasks() string      { return navHelp + " · q quit" }
func (parentHelp) ApprovalCenter() string { return "↑/↓ select · a approve · r reject · " + navHelp + " · q quit" }
func (parentHelp) AssignTask() string     { return formHelp }
func (parentHelp) Achievements() string   { return formHelp }
func (parentHelp) Schedule() string       { return navHelp + " · q quit" }

type teacherHelp struct{}

func (teacherHelp) AddTask() string   { return formHelp }
func (teacherHelp) Schedule() string  { return navHelp + " · q quit" }
func (teacherHelp) RateTasks() string { return "↑/↓ select · 1-5 rate · " + navHelp + " · q quit" }
