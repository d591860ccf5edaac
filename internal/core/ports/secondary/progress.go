package secondary

import (
	"context"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// ProgressTracker is the completion-tracking collaborator. MarkCompleted is an
// idempotent upsert keyed by (user, course, lesson): repeat calls for the same
// key collapse to one completion.
type ProgressTracker interface {
	MarkCompleted(ctx context.Context, completion *domain.LessonCompletion) error

	// CompletionPercent reports the user's completion percentage for a course
	// given the course's total lesson count.
	CompletionPercent(ctx context.Context, userID, courseID string, totalLessons int) (float64, error)
}
