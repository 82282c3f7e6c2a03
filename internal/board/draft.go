package board

// TaskDraft mirrors the task-assignment form shared by parents and teachers.
type TaskDraft struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=2000"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Points      *int   `json:"points" validate:"required,gte=0,lte=10000"`
}

// IsZero reports whether every field is still empty.
func (d TaskDraft) IsZero() bool {
	return d.Title == "" && d.Description == "" && d.DueDate == "" && d.Points == nil
}

// TaskDraftPatch carries the form fields a user changed. Nil fields are kept.
// ClearPoints empties the points field again.
type TaskDraftPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Points      *int    `json:"points"`
	ClearPoints bool    `json:"-"`
}

// Apply returns a copy of the draft with the patched fields replaced.
func (p TaskDraftPatch) Apply(d TaskDraft) TaskDraft {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.ClearPoints {
		d.Points = nil
	} else if p.Points != nil {
		points := *p.Points
		d.Points = &points
	} else if d.Points != nil {
		points := *d.Points
		d.Points = &points
	}
	return d
}

// AchievementDraft mirrors the achievement-creation form.
type AchievementDraft struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=500"`
	Reward      string `json:"reward" validate:"required,max=255"`
}

// IsZero reports whether every field is still empty.
func (d AchievementDraft) IsZero() bool {
	return d == AchievementDraft{}
}

// AchievementDraftPatch carries the achievement form fields a user changed.
type AchievementDraftPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Reward      *string `json:"reward"`
}

// Apply returns a copy of the draft with the patched fields replaced.
func (p AchievementDraftPatch) Apply(d AchievementDraft) AchievementDraft {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Reward != nil {
		d.Reward = *p.Reward
	}
	return d
}
