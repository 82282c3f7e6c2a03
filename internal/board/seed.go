package board

// SeedChild returns the snapshot a child board starts from.
func SeedChild() ChildState {
	return ChildState{
		Profile: ChildProfile{
			Level:              5,
			AchievementsEarned: 12,
			AchievementsTotal:  20,
			LevelProgress:      33,
		},
		Tasks: []Task{
			{ID: 1, Title: "Complete Math Homework", Points: 50},
			{ID: 2, Title: "Clean Your Room", Points: 30},
			{ID: 3, Title: "Read 20 Pages", Points: 40},
			{ID: 4, Title: "Practice Piano for 30 Minutes", Points: 45},
			{ID: 5, Title: "Help with Dinner Preparation", Points: 35},
		},
	}
}

// SeedParent returns the snapshot a parent board starts from.
func SeedParent() ParentState {
	return ParentState{
		View:          DefaultParentView,
		DailyProgress: 65,
		Reviews: []Review{
			{ID: 1, ChildName: "Emma", TaskTitle: "Complete Homework", SubmittedDate: "2024-12-28", Status: ReviewPending},
			{ID: 2, ChildName: "Emma", TaskTitle: "Clean Room", SubmittedDate: "2024-12-28", Status: ReviewPending},
			{ID: 3, ChildName: "Liam", TaskTitle: "Practice Piano", SubmittedDate: "2024-12-27", Status: ReviewPending},
			{ID: 4, ChildName: "Emma", TaskTitle: "Read 30 Pages", SubmittedDate: "2024-12-27", Status: ReviewPending},
		},
		Achievements: []Achievement{
			{ID: 1, Title: "Math Master", Description: "Finish 5 Math tasks", Reward: "Movie Night"},
			{ID: 2, Title: "Reading Champion", Description: "Read 3 books this month", Reward: "New Book"},
		},
	}
}

// SeedTeacher returns the snapshot a teacher board starts from.
func SeedTeacher() TeacherState {
	return TeacherState{
		View: DefaultTeacherView,
		Class: ClassInfo{
			ClassName:         "4-B",
			TotalStudents:     24,
			CompletionAverage: 75,
		},
		Ratings: []Rating{
			{ID: 1, StudentName: "Emily Johnson", TaskTitle: "Math Homework Chapter 5", SubmittedDate: "2024-12-27"},
			{ID: 2, StudentName: "Michael Chen", TaskTitle: "Science Project Report", SubmittedDate: "2024-12-27"},
			{ID: 3, StudentName: "Sarah Williams", TaskTitle: "Reading Assignment", SubmittedDate: "2024-12-26"},
			{ID: 4, StudentName: "David Martinez", TaskTitle: "History Essay", SubmittedDate: "2024-12-26"},
		},
	}
}
