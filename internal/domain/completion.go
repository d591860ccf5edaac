package domain

import "time"

// LessonCompletion marks a lesson as completed by a user. The (user, course,
// lesson) key makes the upsert idempotent across repeat accepted submissions.
type LessonCompletion struct {
	UserID      string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	LessonID    string    `json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
}
