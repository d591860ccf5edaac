package execution

import (
	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/domain"
)

// Sanitizer shapes engine output into the caller-facing payload. Result mode
// and execution profile come from configuration, never from the caller:
// learners cannot opt themselves into richer diagnostics.
type Sanitizer struct {
	cfg *config.GradingConfig
}

func NewSanitizer(cfg *config.GradingConfig) *Sanitizer {
	return &Sanitizer{cfg: cfg}
}

func (s *Sanitizer) strict() bool {
	return s.cfg.ResultMode == config.ResultModeStrict
}

// RunPreview shapes a stateless run result. Strict mode reveals nothing
// beyond a bare OK so previews cannot be used to probe execution internals.
func (s *Sanitizer) RunPreview(result *domain.ExecutionResult, limits domain.EffectiveConstraints) *RunResponse {
	if s.strict() {
		return &RunResponse{Status: domain.RunStatusOK}
	}

	response := &RunResponse{
		Status:        s.classifyRun(result, limits),
		Stdout:        strPtr(result.Stdout),
		Stderr:        strPtr(result.Stderr),
		CompileOutput: strPtr(result.CompileOutput),
		ExitCode:      result.ExitCode,
		Constraints:   &limits,
	}
	if result.WallTime != nil {
		response.WallTimeMs = int64Ptr(result.WallTimeMs())
	}
	if result.MemoryBytes != nil {
		response.MemoryKb = int64Ptr(result.MemoryKb())
	}
	return response
}

// classifyRun derives the preview status. Wall time is only graded against
// the limit in the judge profile; memory never independently fails a run.
func (s *Sanitizer) classifyRun(result *domain.ExecutionResult, limits domain.EffectiveConstraints) domain.RunStatus {
	switch {
	case result.CompileFailed:
		return domain.RunStatusCompileError
	case s.cfg.Profile == config.ProfileJudge && result.WallTimeMs() > limits.TimeLimitMs:
		return domain.RunStatusTimeLimitExceeded
	case result.ExitCode != nil && *result.ExitCode != 0:
		return domain.RunStatusRuntimeError
	default:
		return domain.RunStatusSuccess
	}
}

// SubmissionSummary shapes the grading outcome. Hidden test content never
// leaves the engine; strict mode additionally withholds program output and
// the hidden flag itself.
func (s *Sanitizer) SubmissionSummary(submission *domain.CodeSubmission, grading *domain.GradingResult, limits domain.EffectiveConstraints) *SubmissionSummary {
	summary := &SubmissionSummary{
		SubmissionID:    submission.ID,
		Status:          submission.Status,
		PassedTestCases: grading.PassedTestCases,
		TotalTestCases:  grading.TotalTestCases,
		RuntimeMs:       grading.MaxTimeMs,
		TimeLimitMs:     limits.TimeLimitMs,
		MemoryKb:        grading.MaxMemoryKb,
		MemoryLimitKb:   limits.MemoryLimitKb,
	}

	if !s.strict() {
		summary.Stdout = strPtr(submission.Stdout)
		summary.Stderr = strPtr(submission.Stderr)
		if grading.HasCompileError {
			summary.CompileOutput = strPtr(grading.CompileOutput)
		}
	}

	if submission.Status == domain.SubmissionWrongAnswer {
		if failure := grading.FirstFailure(); failure != nil {
			summary.FailedTestCase = s.failedTestCase(failure)
		}
	}
	return summary
}

func (s *Sanitizer) failedTestCase(failure *domain.TestCaseResult) *FailedTestCase {
	failed := &FailedTestCase{Index: failure.Index}
	if !s.strict() {
		hidden := failure.IsHidden
		failed.IsHidden = &hidden
	}
	if !failure.IsHidden {
		failed.Input = strPtr(failure.Input)
		failed.ExpectedOutput = strPtr(failure.ExpectedOutput)
		failed.ActualOutput = strPtr(failure.ActualOutput)
	}
	return failed
}

// SubmissionRecord shapes a persisted submission for read endpoints.
func (s *Sanitizer) SubmissionRecord(submission *domain.CodeSubmission) *SubmissionRecord {
	record := &SubmissionRecord{
		ID:              submission.ID,
		LessonID:        submission.LessonID,
		ExerciseID:      submission.ExerciseID,
		Language:        submission.Language,
		Version:         submission.Version,
		Status:          submission.Status,
		PassedTestCases: submission.PassedTestCases,
		TotalTestCases:  submission.TotalTestCases,
		ExecutionTimeMs: submission.ExecutionTimeMs,
		CreatedAt:       submission.CreatedAt,
	}
	if !s.strict() {
		record.Stdout = strPtr(submission.Stdout)
		record.Stderr = strPtr(submission.Stderr)
	}
	return record
}

func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }
