package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/board"
)

type screen int

const (
	screenRoles screen = iota
	screenChild
	screenParent
	screenTeacher
)

// Model is the terminal front end for the three dashboards. Every dashboard
// opened from the role screen starts from its seed.
type Model struct {
	screen     screen
	roles      []board.Role
	roleCursor int

	child   board.ChildState
	parent  board.ParentState
	teacher board.TeacherState

	// wishing moves child input from the task list to the wish form.
	wishing bool
	wish    wishDraft

	// cursor selects a row in list panels, field selects a form input.
	cursor int
	field  int
	status string

	validate *validator.Validate
	logger   zerolog.Logger
	width    int
	height   int
}

// New returns a model showing the role selection screen.
func New(logger zerolog.Logger) Model {
	return Model{
		screen:   screenRoles,
		roles:    board.Roles(),
		validate: validator.New(),
		logger:   logger.With().Str("component", "tui").Logger(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) mount(role board.Role) Model {
	m.cursor = 0
	m.field = 0
	m.status = ""
	m.wishing = false
	m.wish = wishDraft{}

	switch role {
	case board.RoleChild:
		m.screen = screenChild
		m.child = board.SeedChild()
	case board.RoleParent:
		m.screen = screenParent
		m.parent = board.SeedParent()
	default:
		m.screen = screenTeacher
		m.teacher = board.SeedTeacher()
	}

	m.logger.Debug().Str("role", string(role)).Msg("dashboard mounted")
	return m
}

func (m Model) resetFocus() Model {
	m.cursor = 0
	m.field = 0
	return m
}
