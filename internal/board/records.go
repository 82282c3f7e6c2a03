// Package board holds the dashboard domain: seeded records, view modes, form
// drafts and the reducers that turn one immutable snapshot into the next.
package board

import (
	"fmt"
	"strings"
)

// Role identifies which dashboard a board renders.
type Role string

// Supported dashboard roles.
const (
	RoleChild   Role = "child"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
)

// Roles lists every dashboard role in navigation order.
func Roles() []Role {
	return []Role{RoleChild, RoleParent, RoleTeacher}
}

// ParseRole normalises the supplied value into a known role.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleChild, RoleParent, RoleTeacher:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Task is a unit of work with a point reward and a completion flag.
type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Points    int    `json:"points"`
	Completed bool   `json:"completed"`
}

// ReviewStatus is the tri-state outcome of a parent review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is a child's turned-in task awaiting a parent decision.
type Review struct {
	ID            int          `json:"id"`
	ChildName     string       `json:"child_name"`
	TaskTitle     string       `json:"task_title"`
	SubmittedDate string       `json:"submitted_date"`
	Status        ReviewStatus `json:"status"`
}

// IsPending reports whether the parent has not decided on the review yet.
func (r Review) IsPending() bool {
	return r.Status == ReviewPending
}

// Star bounds for teacher ratings. Zero means not rated.
const (
	MinStars = 1
	MaxStars = 5
)

// Rating is a student's turned-in task scored by a teacher.
type Rating struct {
	ID            int    `json:"id"`
	StudentName   string `json:"student_name"`
	TaskTitle     string `json:"task_title"`
	SubmittedDate string `json:"submitted_date"`
	Stars         int    `json:"stars"`
}

// IsRated reports whether the submission carries a star rating.
func (r Rating) IsRated() bool {
	return r.Stars >= MinStars
}

// Achievement is a named incentive with a goal and a reward.
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      string `json:"reward"`
}

// NextAchievementID returns one past the highest identifier in the list.
func NextAchievementID(achievements []Achievement) int {
	next := 1
	for _, achievement := range achievements {
		if achievement.ID >= next {
			next = achievement.ID + 1
		}
	}
	return next
}

// RatingPointsPerStar converts a teacher rating into reward points.
const RatingPointsPerStar = 10

// WishStatus is the state of a wish the child has paid points for.
type WishStatus string

// WishPending marks a wish that still waits for a parent to grant it.
const WishPending WishStatus = "pending"

// Wish is a reward the child buys with earned points.
type Wish struct {
	ID     int        `json:"id"`
	Title  string     `json:"title"`
	Cost   int        `json:"cost"`
	Status WishStatus `json:"status"`
}

// NextWishID returns one past the highest identifier in the list.
func NextWishID(wishes []Wish) int {
	next := 1
	for _, wish := range wishes {
		if wish.ID >= next {
			next = wish.ID + 1
		}
	}
	return next
}
