package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/kidtask-api/internal/board"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldDueDate     = "due_date"
	fieldPoints      = "points"
	fieldReward      = "reward"
	fieldCost        = "cost"
	maxPointsDigits  = 5
)

var (
	taskFields        = []string{fieldTitle, fieldDescription, fieldDueDate, fieldPoints}
	achievementFields = []string{fieldTitle, fieldDescription, fieldReward}
	wishFields        = []string{fieldTitle, fieldCost}
)

var fieldLabels = map[string]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldDueDate:     "Due Date (YYYY-MM-DD)",
	fieldPoints:      "Points",
	fieldReward:      "Reward",
	fieldCost:        "Cost (points)",
}

// parentForms reports the form inputs of each parent panel; nil means the panel has no form.
type parentForms struct{}

func (parentForms) ShowTasks() []string      { return nil }
func (parentForms) ApprovalCenter() []string { return nil }
func (parentForms) AssignTask() []string     { return taskFields }
func (parentForms) Achievements() []string   { return achievementFields }
func (parentForms) Schedule() []string       { return nil }

type teacherForms struct{}

func (teacherForms) AddTask() []string   { return taskFields }
func (teacherForms) Schedule() []string  { return nil }
func (teacherForms) RateTasks() []string { return nil }

func taskFieldValue(d board.TaskDraft, field string) string {
	switch field {
	case fieldTitle:
		return d.Title
	case fieldDescription:
		return d.Description
	case fieldDueDate:
		return d.DueDate
	case fieldPoints:
		if d.Points == nil {
			return ""
		}
		return strconv.Itoa(*d.Points)
	}
	return ""
}

// taskFieldPatch builds a single-field patch. Points accept digits only.
func taskFieldPatch(field, value string) (board.TaskDraftPatch, bool) {
	switch field {
	case fieldTitle:
		return board.TaskDraftPatch{Title: &value}, true
	case fieldDescription:
		return board.TaskDraftPatch{Description: &value}, true
	case fieldDueDate:
		return board.TaskDraftPatch{DueDate: &value}, true
	case fieldPoints:
		if len(value) > maxPointsDigits {
			return board.TaskDraftPatch{}, false
		}
		if value == "" {
			return board.TaskDraftPatch{ClearPoints: true}, true
		}
		points, err := strconv.Atoi(value)
		if err != nil || points < 0 {
			return board.TaskDraftPatch{}, false
		}
		return board.TaskDraftPatch{Points: &points}, true
	}
	return board.TaskDraftPatch{}, false
}

func achievementFieldValue(d board.AchievementDraft, field string) string {
	switch field {
	case fieldTitle:
		return d.Title
	case fieldDescription:
		return d.Description
	case fieldReward:
		return d.Reward
	}
	return ""
}

func achievementFieldPatch(field, value string) board.AchievementDraftPatch {
	switch field {
	case fieldTitle:
		return board.AchievementDraftPatch{Title: &value}
	case fieldDescription:
		return board.AchievementDraftPatch{Description: &value}
	case fieldReward:
		return board.AchievementDraftPatch{Reward: &value}
	}
	return board.AchievementDraftPatch{}
}

// edited applies a key press to the current text of a form input.
func edited(current, key string, runes []rune) (string, bool) {
	switch key {
	case "backspace":
		if current == "" {
			return current, false
		}
		r := []rune(current)
		return string(r[:len(r)-1]), true
	case " ":
		return current + " ", true
	}
	if len(runes) == 0 {
		return current, false
	}
	return current + string(runes), true
}

func describeValidation(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		label := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			parts = append(parts, label+" is required")
		case "datetime":
			parts = append(parts, label+" must look like 2025-01-31")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", label, fieldErr.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}

// wishDraft holds the wish form as typed; cost is parsed on submit.
type wishDraft struct {
	title string
	cost  string
}

func (d wishDraft) value(field string) string {
	if field == fieldCost {
		return d.cost
	}
	return d.title
}

// with returns the draft with one field replaced. Cost accepts digits only.
func (d wishDraft) with(field, value string) (wishDraft, bool) {
	if field != fieldCost {
		d.title = value
		return d, true
	}
	if len(value) > maxPointsDigits || strings.Trim(value, "0123456789") != "" {
		return d, false
	}
	d.cost = value
	return d, true
}

// action converts the typed form into a wish purchase or explains why it cannot be bought.
func (d wishDraft) action(available int) (board.AddWish, string) {
	title := strings.TrimSpace(d.title)
	if title == "" {
		return board.AddWish{}, "title is required"
	}
	cost, err := strconv.Atoi(d.cost)
	if err != nil || cost < 1 {
		return board.AddWish{}, "cost is required"
	}
	if cost > available {
		return board.AddWish{}, fmt.Sprintf("Not enough points: %d left", available)
	}
	return board.AddWish{Title: title, Cost: cost}, ""
}
