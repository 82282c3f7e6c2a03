package board

import "strings"

// ChildAction is a user interaction on the child dashboard.
type ChildAction interface {
	reduceChild(ChildState) ChildState
}

// ParentAction is a user interaction on the parent dashboard.
type ParentAction interface {
	reduceParent(ParentState) ParentState
}

// TeacherAction is a user interaction on the teacher dashboard.
type TeacherAction interface {
	reduceTeacher(TeacherState) TeacherState
}

// ReduceChild applies the action to a copy of the snapshot.
func ReduceChild(state ChildState, action ChildAction) ChildState {
	return action.reduceChild(state.clone())
}

// ReduceParent applies the action to a copy of the snapshot.
func ReduceParent(state ParentState, action ParentAction) ParentState {
	return action.reduceParent(state.clone())
}

// ReduceTeacher applies the action to a copy of the snapshot.
func ReduceTeacher(state TeacherState, action TeacherAction) TeacherState {
	return action.reduceTeacher(state.clone())
}

// CompleteTask marks a task done. Completion is never reversed.
type CompleteTask struct {
	TaskID int
}

func (a CompleteTask) reduceChild(s ChildState) ChildState {
	for i := range s.Tasks {
		if s.Tasks[i].ID == a.TaskID {
			s.Tasks[i].Completed = true
		}
	}
	return s
}

// AddWish buys a wish with earned points. A blank title, a non-positive cost or
// a cost above the available points leaves the board unchanged.
type AddWish struct {
	Title string
	Cost  int
}

func (a AddWish) reduceChild(s ChildState) ChildState {
	title := strings.TrimSpace(a.Title)
	if title == "" || a.Cost < 1 || a.Cost > s.Summary().PointsAvailable {
		return s
	}
	s.Wishes = append(s.Wishes, Wish{
		ID:     NextWishID(s.Wishes),
		Title:  title,
		Cost:   a.Cost,
		Status: WishPending,
	})
	return s
}

// SelectParentView switches the active parent panel.
type SelectParentView struct {
	View ParentView
}

func (a SelectParentView) reduceParent(s ParentState) ParentState {
	if _, err := ParseParentView(string(a.View)); err == nil {
		s.View = a.View
	}
	return s
}

// SelectTeacherView switches the active teacher panel.
type SelectTeacherView struct {
	View TeacherView
}

func (a SelectTeacherView) reduceTeacher(s TeacherState) TeacherState {
	if _, err := ParseTeacherView(string(a.View)); err == nil {
		s.View = a.View
	}
	return s
}

// ReviewSubmission overwrites a review status with approved or rejected.
type ReviewSubmission struct {
	SubmissionID int
	Approved     bool
}

func (a ReviewSubmission) reduceParent(s ParentState) ParentState {
	status := ReviewRejected
	if a.Approved {
		status = ReviewApproved
	}
	for i := range s.Reviews {
		if s.Reviews[i].ID == a.SubmissionID {
			s.Reviews[i].Status = status
		}
	}
	return s
}

// RateSubmission overwrites the stars of a submission. Values outside
// MinStars..MaxStars are ignored.
type RateSubmission struct {
	SubmissionID int
	Stars        int
}

func (a RateSubmission) reduceTeacher(s TeacherState) TeacherState {
	if a.Stars < MinStars || a.Stars > MaxStars {
		return s
	}
	for i := range s.Ratings {
		if s.Ratings[i].ID == a.SubmissionID {
			s.Ratings[i].Stars = a.Stars
		}
	}
	return s
}

// EditTaskDraft changes fields of the task-assignment form.
type EditTaskDraft struct {
	Patch TaskDraftPatch
}

func (a EditTaskDraft) reduceParent(s ParentState) ParentState {
	s.TaskDraft = a.Patch.Apply(s.TaskDraft)
	return s
}

func (a EditTaskDraft) reduceTeacher(s TeacherState) TeacherState {
	s.TaskDraft = a.Patch.Apply(s.TaskDraft)
	return s
}

// SubmitTaskDraft clears the task-assignment form. The submitted draft is not
// added to any task list on the board.
type SubmitTaskDraft struct{}

func (SubmitTaskDraft) reduceParent(s ParentState) ParentState {
	s.TaskDraft = TaskDraft{}
	return s
}

func (SubmitTaskDraft) reduceTeacher(s TeacherState) TeacherState {
	s.TaskDraft = TaskDraft{}
	return s
}

// EditAchievementDraft changes fields of the achievement form.
type EditAchievementDraft struct {
	Patch AchievementDraftPatch
}

func (a EditAchievementDraft) reduceParent(s ParentState) ParentState {
	s.AchievementDraft = a.Patch.Apply(s.AchievementDraft)
	return s
}

// SubmitAchievementDraft appends the drafted achievement and clears the form.
type SubmitAchievementDraft struct{}

func (SubmitAchievementDraft) reduceParent(s ParentState) ParentState {
	s.Achievements = append(s.Achievements, Achievement{
		ID:          NextAchievementID(s.Achievements),
		Title:       s.AchievementDraft.Title,
		Description: s.AchievementDraft.Description,
		Reward:      s.AchievementDraft.Reward,
	})
	s.AchievementDraft = AchievementDraft{}
	return s
}
