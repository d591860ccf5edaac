package execution

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/domain"
	"gitlab.com/codelab-2025.net/internal/static/errs"
)

// Submit grades a submission against the exercise's test cases. Once at least
// one test case has executed, grading always completes and persists a record:
// wrong answers, compile errors and timeouts are outcomes, not errors.
func (s *ExecutionService) Submit(ctx context.Context, lessonID, userID string, req *SubmitRequest) (*SubmissionSummary, error) {
	lesson, exercise, err := s.getExercise(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.validateRuntime(ctx, exercise, req.Language, req.Version); err != nil {
		return nil, err
	}
	// A misconfigured exercise must never silently grade as an empty pass.
	if len(exercise.TestCases) == 0 {
		return nil, errs.Validation("exercise for lesson %s has no test cases configured", lessonID)
	}

	limits := s.resolver.Resolve(exercise.Language, exercise.Constraints)

	grading, err := s.grade(ctx, exercise, req.SourceCode, limits)
	if err != nil {
		// The judge never answered: surface the error, persist nothing.
		return nil, err
	}

	submission := s.buildSubmission(lesson, exercise, userID, req.SourceCode, grading)
	if err := s.submissions.SaveSubmission(ctx, submission); err != nil {
		s.logger.Error("Failed to save submission", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info("Submission graded",
		"submissionId", submission.ID,
		"userId", userID,
		"lessonId", lessonID,
		"status", submission.Status,
		"passed", grading.PassedTestCases,
		"total", grading.TotalTestCases)

	if grading.Status == domain.SubmissionAccepted {
		s.markCompleted(ctx, lesson, userID)
	}

	return s.sanitizer.SubmissionSummary(submission, grading, limits), nil
}

// grade runs the test cases sequentially, in declared order, with the
// configured inter-test delay keeping the judge's rate limiter happy. A
// compile error stops the iteration: it is identical across all inputs.
func (s *ExecutionService) grade(ctx context.Context, exercise *domain.CodingExercise, sourceCode string, limits domain.EffectiveConstraints) (*domain.GradingResult, error) {
	grading := &domain.GradingResult{TotalTestCases: len(exercise.TestCases)}

	for i, testCase := range exercise.TestCases {
		if i > 0 {
			s.clock.Sleep(s.judgeCfg.SubmitDelay)
		}

		result, err := s.judge.Execute(ctx, &domain.ExecutionRequest{
			Language:         exercise.Language,
			Version:          exercise.Version,
			SourceCode:       sourceCode,
			Stdin:            testCase.Input,
			RunTimeoutMs:     limits.TimeLimitMs,
			CompileTimeoutMs: limits.CompileTimeoutMs,
			MemoryLimitBytes: limits.MemoryLimitBytes,
		})
		if err != nil {
			return nil, fmt.Errorf("test case %d: %w", i+1, err)
		}

		testResult := domain.TestCaseResult{
			Index:          i,
			Input:          testCase.Input,
			ExpectedOutput: testCase.ExpectedOutput,
			IsHidden:       testCase.IsHidden,
			ActualOutput:   result.Stdout,
			Stderr:         result.Stderr,
			WallTimeMs:     result.WallTimeMs(),
			MemoryKb:       result.MemoryKb(),
		}

		if result.CompileFailed {
			testResult.CompileFailed = true
			grading.HasCompileError = true
			grading.CompileOutput = result.CompileOutput
			grading.TestCaseResults = append(grading.TestCaseResults, testResult)
			break
		}

		testResult.Passed = normalizeOutput(result.Stdout) == normalizeOutput(testCase.ExpectedOutput)
		if testResult.Passed {
			grading.PassedTestCases++
		}
		grading.TotalTimeMs += testResult.WallTimeMs
		if testResult.WallTimeMs > grading.MaxTimeMs {
			grading.MaxTimeMs = testResult.WallTimeMs
		}
		if testResult.MemoryKb > grading.MaxMemoryKb {
			grading.MaxMemoryKb = testResult.MemoryKb
		}
		grading.TestCaseResults = append(grading.TestCaseResults, testResult)
	}

	grading.Status = s.classify(grading, limits)
	return grading, nil
}

// classify applies the status precedence: COMPILE_ERROR beats
// TIME_LIMIT_EXCEEDED beats WRONG_ANSWER beats ACCEPTED. Time is only graded
// in the judge profile.
func (s *ExecutionService) classify(grading *domain.GradingResult, limits domain.EffectiveConstraints) domain.SubmissionStatus {
	switch {
	case grading.HasCompileError:
		return domain.SubmissionCompileError
	case s.gradingCfg.Profile == config.ProfileJudge && grading.MaxTimeMs > limits.TimeLimitMs:
		return domain.SubmissionTimeLimitExceeded
	case grading.PassedTestCases < grading.TotalTestCases:
		return domain.SubmissionWrongAnswer
	default:
		return domain.SubmissionAccepted
	}
}

func (s *ExecutionService) buildSubmission(lesson *domain.Lesson, exercise *domain.CodingExercise, userID, sourceCode string, grading *domain.GradingResult) *domain.CodeSubmission {
	submission := domain.NewCodeSubmission(userID, lesson.ID, exercise.ID, sourceCode, exercise.Language, exercise.Version)
	submission.Status = grading.Status
	submission.PassedTestCases = grading.PassedTestCases
	submission.TotalTestCases = grading.TotalTestCases
	submission.ExecutionTimeMs = grading.TotalTimeMs

	// The record keeps the output most useful for later inspection: compile
	// diagnostics, the first failure, or the final test when everything passed.
	if grading.HasCompileError {
		submission.Stderr = grading.CompileOutput
	} else if failure := grading.FirstFailure(); failure != nil {
		submission.Stdout = failure.ActualOutput
		submission.Stderr = failure.Stderr
	} else if n := len(grading.TestCaseResults); n > 0 {
		submission.Stdout = grading.TestCaseResults[n-1].ActualOutput
		submission.Stderr = grading.TestCaseResults[n-1].Stderr
	}
	return submission
}

// markCompleted upserts the completion record and asks the tracker to
// recompute the course percentage. Failures here are logged, not surfaced:
// the submission record is already persisted.
func (s *ExecutionService) markCompleted(ctx context.Context, lesson *domain.Lesson, userID string) {
	completion := &domain.LessonCompletion{
		UserID:      userID,
		CourseID:    lesson.CourseID,
		LessonID:    lesson.ID,
		CompletedAt: s.clock.Now(),
	}
	if err := s.progress.MarkCompleted(ctx, completion); err != nil {
		s.logger.Error("Failed to mark lesson completed",
			"userId", userID, "lessonId", lesson.ID, "error", err)
		return
	}

	totalLessons, err := s.exercises.CountLessonsByCourse(ctx, lesson.CourseID)
	if err != nil {
		s.logger.Warn("Failed to count course lessons", "courseId", lesson.CourseID, "error", err)
		return
	}
	percent, err := s.progress.CompletionPercent(ctx, userID, lesson.CourseID, totalLessons)
	if err != nil {
		s.logger.Warn("Failed to recompute completion percent",
			"userId", userID, "courseId", lesson.CourseID, "error", err)
		return
	}
	s.logger.Info("Course progress updated",
		"userId", userID, "courseId", lesson.CourseID, "percent", percent)
}

// normalizeOutput makes the comparison insensitive to CRLF line endings and
// leading/trailing whitespace. Idempotent by construction.
func normalizeOutput(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}
