package board_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/noah-isme/kidtask-api/internal/board"
)

type parentTags struct{}

func (parentTags) ShowTasks() board.ParentView      { return board.ParentShowTasks }
func (parentTags) ApprovalCenter() board.ParentView { return board.ParentApprovalCenter }
func (parentTags) AssignTask() board.ParentView     { return board.ParentAssignTask }
func (parentTags) Achievements() board.ParentView   { return board.ParentAchievements }
func (parentTags) Schedule() board.ParentView       { return board.ParentSchedule }

type teacherTags struct{}

func (teacherTags) AddTask() board.TeacherView   { return board.TeacherAddTask }
func (teacherTags) Schedule() board.TeacherView  { return board.TeacherSchedule }
func (teacherTags) RateTasks() board.TeacherView { return board.TeacherRateTasks }

func TestViewDispatch(t *testing.T) {
	Convey("Rendering a parent view picks exactly that panel", t, func() {
		for _, view := range board.ParentViews() {
			So(board.RenderParent[board.ParentView](view, parentTags{}), ShouldEqual, view)
			So(view.Label(), ShouldNotBeBlank)
		}
		So(board.RenderParent[board.ParentView]("bogus", parentTags{}), ShouldEqual, board.DefaultParentView)
		So(board.RenderParent[board.ParentView]("", parentTags{}), ShouldEqual, board.ParentAssignTask)
	})

	Convey("Rendering a teacher view picks exactly that panel", t, func() {
		for _, view := range board.TeacherViews() {
			So(board.RenderTeacher[board.TeacherView](view, teacherTags{}), ShouldEqual, view)
			So(view.Label(), ShouldNotBeBlank)
		}
		So(board.RenderTeacher[board.TeacherView]("bogus", teacherTags{}), ShouldEqual, board.DefaultTeacherView)
		So(board.RenderTeacher[board.TeacherView]("", teacherTags{}), ShouldEqual, board.TeacherAddTask)
	})

	Convey("Navigation tags parse case-insensitively", t, func() {
		view, err := board.ParseParentView(" Approval-Center ")
		So(err, ShouldBeNil)
		So(view, ShouldEqual, board.ParentApprovalCenter)

		_, err = board.ParseTeacherView("approval-center")
		So(err, ShouldEqual, board.ErrUnknownView)

		role, err := board.ParseRole("TEACHER")
		So(err, ShouldBeNil)
		So(role, ShouldEqual, board.RoleTeacher)

		_, err = board.ParseRole("admin")
		So(err, ShouldNotBeNil)
	})

	Convey("Achievement ids never collide", t, func() {
		So(board.NextAchievementID(nil), ShouldEqual, 1)
		So(board.NextAchievementID([]board.Achievement{{ID: 1}, {ID: 2}}), ShouldEqual, 3)
		So(board.NextAchievementID([]board.Achievement{{ID: 4}, {ID: 2}}), ShouldEqual, 5)
	})
}
