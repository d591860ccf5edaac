package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// SubmissionRepository persists grading attempts.
type SubmissionRepository interface {
	// SaveSubmission inserts a new submission record. Records are immutable.
	SaveSubmission(ctx context.Context, submission *domain.CodeSubmission) error

	// GetSubmission retrieves a submission by ID. Returns nil when not found.
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.CodeSubmission, error)

	// GetSubmissionsByUserAndLesson lists a user's attempts for one lesson,
	// newest first.
	GetSubmissionsByUserAndLesson(ctx context.Context, userID, lessonID string) ([]*domain.CodeSubmission, error)
}
