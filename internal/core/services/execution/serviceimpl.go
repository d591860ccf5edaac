package execution

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2025.net/internal/core/services/constraint"
	"gitlab.com/codelab-2025.net/internal/core/services/runtime"
	"gitlab.com/codelab-2025.net/internal/domain"
	"gitlab.com/codelab-2025.net/internal/static/errs"
)

var _ IExecutionService = &ExecutionService{}

// ExecutionService implements the IExecutionService interface
type ExecutionService struct {
	exercises   secondary.ExerciseRepository
	submissions secondary.SubmissionRepository
	progress    secondary.ProgressTracker
	judge       secondary.JudgeClient
	catalog     runtime.ICatalogService
	resolver    *constraint.Resolver
	sanitizer   *Sanitizer
	gradingCfg  *config.GradingConfig
	judgeCfg    *config.JudgeConfig
	clock       primary.Clock
	logger      primary.Logger
}

// NewExecutionService creates a new execution service
func NewExecutionService(
	exercises secondary.ExerciseRepository,
	submissions secondary.SubmissionRepository,
	progress secondary.ProgressTracker,
	judge secondary.JudgeClient,
	catalog runtime.ICatalogService,
	gradingCfg *config.GradingConfig,
	judgeCfg *config.JudgeConfig,
	clock primary.Clock,
	logger primary.Logger,
) *ExecutionService {
	return &ExecutionService{
		exercises:   exercises,
		submissions: submissions,
		progress:    progress,
		judge:       judge,
		catalog:     catalog,
		resolver:    constraint.NewResolver(gradingCfg),
		sanitizer:   NewSanitizer(gradingCfg),
		gradingCfg:  gradingCfg,
		judgeCfg:    judgeCfg,
		clock:       clock,
		logger:      logger,
	}
}

// GetSubmission retrieves one of the caller's past submissions
func (s *ExecutionService) GetSubmission(ctx context.Context, userID string, submissionID uuid.UUID) (*SubmissionRecord, error) {
	submission, err := s.submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		s.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	// A foreign submission is indistinguishable from a missing one.
	if submission == nil || submission.UserID != userID {
		return nil, errs.NotFound("submission", submissionID.String())
	}
	return s.sanitizer.SubmissionRecord(submission), nil
}

// ListSubmissions lists the caller's submissions for a lesson
func (s *ExecutionService) ListSubmissions(ctx context.Context, userID, lessonID string) ([]*SubmissionRecord, error) {
	submissions, err := s.submissions.GetSubmissionsByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		s.logger.Error("Failed to list submissions", "lessonId", lessonID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	records := make([]*SubmissionRecord, 0, len(submissions))
	for _, submission := range submissions {
		records = append(records, s.sanitizer.SubmissionRecord(submission))
	}
	return records, nil
}

// getExercise loads the lesson and its coding exercise, translating absence
// into NotFoundError before any judge call happens.
func (s *ExecutionService) getExercise(ctx context.Context, lessonID string) (*domain.Lesson, *domain.CodingExercise, error) {
	lesson, err := s.exercises.GetLesson(ctx, lessonID)
	if err != nil {
		s.logger.Error("Failed to get lesson", "lessonId", lessonID, "error", err)
		return nil, nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	if lesson == nil {
		return nil, nil, errs.NotFound("lesson", lessonID)
	}
	if lesson.Exercise == nil {
		return nil, nil, errs.NotFound("coding exercise for lesson", lessonID)
	}
	return lesson, lesson.Exercise, nil
}

// validateRuntime enforces the exercise's configured language/version and
// asks the catalog whether the judge still has it registered. The catalog
// check is best-effort: only a confirmed "unsupported" blocks execution.
func (s *ExecutionService) validateRuntime(ctx context.Context, exercise *domain.CodingExercise, language, version string) error {
	if !strings.EqualFold(language, exercise.Language) || version != exercise.Version {
		return errs.Validation("exercise expects %s %s, got %s %s",
			exercise.Language, exercise.Version, language, version)
	}

	supported, err := s.catalog.IsSupported(ctx, exercise.Language, exercise.Version)
	if err != nil {
		s.logger.Warn("Runtime support check failed, continuing",
			"language", exercise.Language, "version", exercise.Version, "error", err)
		return nil
	}
	if !supported {
		return errs.Validation("runtime %s %s is not supported by the execution service",
			exercise.Language, exercise.Version)
	}
	return nil
}
