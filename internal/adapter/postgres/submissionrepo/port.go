// package submissionrepo contains the PostgreSQL implementation of the
// submission repository.
package submissionrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/domain"
)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSubmission saves a graded submission to PostgreSQL. Submissions are
// append-only; a retried save with the same ID overwrites the grading fields.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, submission *domain.CodeSubmission) error {
	query := `
		INSERT INTO code_submissions (
			id, user_id, lesson_id, exercise_id, source_code, language, version,
			status, stdout, stderr, execution_time_ms,
			passed_test_cases, total_test_cases, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			stdout = EXCLUDED.stdout,
			stderr = EXCLUDED.stderr,
			execution_time_ms = EXCLUDED.execution_time_ms,
			passed_test_cases = EXCLUDED.passed_test_cases,
			total_test_cases = EXCLUDED.total_test_cases
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.UserID,
		submission.LessonID,
		submission.ExerciseID,
		submission.SourceCode,
		submission.Language,
		submission.Version,
		submission.Status,
		submission.Stdout,
		submission.Stderr,
		submission.ExecutionTimeMs,
		submission.PassedTestCases,
		submission.TotalTestCases,
		submission.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save submission", "submissionId", submission.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// GetSubmission retrieves a submission from PostgreSQL by ID
func (r *SubmissionRepository) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.CodeSubmission, error) {
	query := `
		SELECT id, user_id, lesson_id, exercise_id, source_code, language, version,
			   status, stdout, stderr, execution_time_ms,
			   passed_test_cases, total_test_cases, created_at
		FROM code_submissions
		WHERE id = $1
	`

	var submission domain.CodeSubmission
	err := r.db.GetContext(ctx, &submission, query, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &submission, nil
}

// GetSubmissionsByUserAndLesson retrieves a user's submissions for a lesson,
// newest first.
func (r *SubmissionRepository) GetSubmissionsByUserAndLesson(ctx context.Context, userID, lessonID string) ([]*domain.CodeSubmission, error) {
	query := `
		SELECT id, user_id, lesson_id, exercise_id, source_code, language, version,
			   status, stdout, stderr, execution_time_ms,
			   passed_test_cases, total_test_cases, created_at
		FROM code_submissions
		WHERE user_id = $1 AND lesson_id = $2
		ORDER BY created_at DESC
	`

	submissions := make([]*domain.CodeSubmission, 0)
	err := r.db.SelectContext(ctx, &submissions, query, userID, lessonID)
	if err != nil {
		r.logger.Error("Failed to get submissions", "userId", userID, "lessonId", lessonID, "error", err)
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	return submissions, nil
}
