package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/kidtask-api/internal/board"
)

// sanitizeField strips markup but keeps the plain text exactly as typed, so
// quotes and ampersands are stored unescaped.
func sanitizeField(policy *bluemonday.Policy, value *string) *string {
	if value == nil {
		return nil
	}
	clean := strings.TrimSpace(html.UnescapeString(policy.Sanitize(*value)))
	return &clean
}

func sanitizeTaskPatch(policy *bluemonday.Policy, patch board.TaskDraftPatch) board.TaskDraftPatch {
	patch.Title = sanitizeField(policy, patch.Title)
	patch.Description = sanitizeField(policy, patch.Description)
	patch.DueDate = sanitizeField(policy, patch.DueDate)
	return patch
}

func sanitizeAchievementPatch(policy *bluemonday.Policy, patch board.AchievementDraftPatch) board.AchievementDraftPatch {
	patch.Title = sanitizeField(policy, patch.Title)
	patch.Description = sanitizeField(policy, patch.Description)
	patch.Reward = sanitizeField(policy, patch.Reward)
	return patch
}
