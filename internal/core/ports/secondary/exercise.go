package secondary

import (
	"context"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// ExerciseRepository reads lesson and exercise metadata from the course
// catalog. The catalog is owned by the platform's CRUD services; this core
// only ever reads it.
type ExerciseRepository interface {
	// GetLesson retrieves a lesson by ID. Returns nil when not found.
	GetLesson(ctx context.Context, lessonID string) (*domain.Lesson, error)

	// CountLessonsByCourse reports how many lessons a course has, used when
	// recomputing a learner's completion percentage.
	CountLessonsByCourse(ctx context.Context, courseID string) (int, error)
}
