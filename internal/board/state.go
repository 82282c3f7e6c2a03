package board

import (
	"math"
	"slices"
)

// ChildProfile is the header card of the child dashboard.
type ChildProfile struct {
	Level              int `json:"level"`
	AchievementsEarned int `json:"achievements_earned"`
	AchievementsTotal  int `json:"achievements_total"`
	LevelProgress      int `json:"level_progress"`
}

// ChildState is the full snapshot of a child dashboard.
type ChildState struct {
	Profile ChildProfile
	Tasks   []Task
	Wishes  []Wish
}

// ChildSummary combines the seeded profile with figures derived from the tasks.
type ChildSummary struct {
	ChildProfile
	CompletedTasks int `json:"completed_tasks"`
	TotalTasks     int `json:"total_tasks"`
	PointsEarned   int `json:"points_earned"`
	// PointsSpent is the cost of every wish bought so far.
	PointsSpent     int `json:"points_spent"`
	PointsAvailable int `json:"points_available"`
}

// Summary derives the header card from the snapshot.
func (s ChildState) Summary() ChildSummary {
	summary := ChildSummary{ChildProfile: s.Profile, TotalTasks: len(s.Tasks)}
	for _, task := range s.Tasks {
		if task.Completed {
			summary.CompletedTasks++
			summary.PointsEarned += task.Points
		}
	}
	for _, wish := range s.Wishes {
		summary.PointsSpent += wish.Cost
	}
	summary.PointsAvailable = summary.PointsEarned - summary.PointsSpent
	return summary
}

// ParentState is the full snapshot of a parent dashboard.
type ParentState struct {
	View             ParentView
	DailyProgress    int
	Reviews          []Review
	Achievements     []Achievement
	TaskDraft        TaskDraft
	AchievementDraft AchievementDraft
}

// ParentSummary is the header card of the parent dashboard.
type ParentSummary struct {
	DailyProgress  int `json:"daily_progress"`
	PendingReviews int `json:"pending_reviews"`
}

// Summary derives the header card from the snapshot.
func (s ParentState) Summary() ParentSummary {
	return ParentSummary{
		DailyProgress:  s.DailyProgress,
		PendingReviews: len(s.PendingReviews()),
	}
}

// PendingReviews returns the reviews still waiting in the approval center.
func (s ParentState) PendingReviews() []Review {
	pending := make([]Review, 0, len(s.Reviews))
	for _, review := range s.Reviews {
		if review.IsPending() {
			pending = append(pending, review)
		}
	}
	return pending
}

// ClassInfo is the header card of the teacher dashboard.
type ClassInfo struct {
	ClassName         string `json:"class_name"`
	TotalStudents     int    `json:"total_students"`
	CompletionAverage int    `json:"completion_average"`
}

// TeacherState is the full snapshot of a teacher dashboard.
type TeacherState struct {
	View      TeacherView
	Class     ClassInfo
	Ratings   []Rating
	TaskDraft TaskDraft
}

// TeacherSummary combines the class card with rating figures.
type TeacherSummary struct {
	ClassInfo
	RatedSubmissions int     `json:"rated_submissions"`
	AverageStars     float64 `json:"average_stars"`
	PointsAwarded    int     `json:"points_awarded"`
}

// Summary derives the header card from the snapshot.
func (s TeacherState) Summary() TeacherSummary {
	summary := TeacherSummary{ClassInfo: s.Class}
	total := 0
	for _, rating := range s.Ratings {
		if rating.IsRated() {
			summary.RatedSubmissions++
			total += rating.Stars
		}
	}
	summary.PointsAwarded = total * RatingPointsPerStar
	if summary.RatedSubmissions > 0 {
		average := float64(total) / float64(summary.RatedSubmissions)
		summary.AverageStars = math.Round(average*100) / 100
	}
	return summary
}

func (s ChildState) clone() ChildState {
	s.Tasks = slices.Clone(s.Tasks)
	s.Wishes = slices.Clone(s.Wishes)
	return s
}

func (s ParentState) clone() ParentState {
	s.Reviews = slices.Clone(s.Reviews)
	s.Achievements = slices.Clone(s.Achievements)
	s.TaskDraft = TaskDraftPatch{}.Apply(s.TaskDraft)
	return s
}

func (s TeacherState) clone() TeacherState {
	s.Ratings = slices.Clone(s.Ratings)
	s.TaskDraft = TaskDraftPatch{}.Apply(s.TaskDraft)
	return s
}
