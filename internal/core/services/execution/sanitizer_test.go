package execution

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/domain"
)

func sanitizerWith(mode config.ResultMode) *Sanitizer {
	return NewSanitizer(&config.GradingConfig{
		ResultMode: mode,
		Profile:    config.ProfileLearning,
	})
}

func gradedSubmission(status domain.SubmissionStatus) (*domain.CodeSubmission, *domain.GradingResult) {
	submission := domain.NewCodeSubmission("user-1", "lesson-1", "ex-1", "code", "python", "3.12.0")
	submission.ID = uuid.New()
	submission.Status = status
	submission.Stdout = "3\n"
	submission.Stderr = "warning"
	submission.PassedTestCases = 1
	submission.TotalTestCases = 2

	grading := &domain.GradingResult{
		Status:          status,
		PassedTestCases: 1,
		TotalTestCases:  2,
		MaxTimeMs:       120,
		MaxMemoryKb:     8192,
		TestCaseResults: []domain.TestCaseResult{
			{Index: 0, Passed: true, Input: "1 1", ExpectedOutput: "2", ActualOutput: "2\n"},
			{Index: 1, Passed: false, Input: "1 2", ExpectedOutput: "3", ActualOutput: "4\n", IsHidden: true},
		},
	}
	return submission, grading
}

func marshalKeys(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	keys := map[string]interface{}{}
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return keys
}

func TestStrictSummaryWithholdsOutput(t *testing.T) {
	t.Parallel()
	submission, grading := gradedSubmission(domain.SubmissionWrongAnswer)
	limits := domain.EffectiveConstraints{TimeLimitMs: 2000, MemoryLimitKb: 128 * 1024}

	summary := sanitizerWith(config.ResultModeStrict).SubmissionSummary(submission, grading, limits)
	keys := marshalKeys(t, summary)

	for _, forbidden := range []string{"stdout", "stderr", "compileOutput"} {
		if _, ok := keys[forbidden]; ok {
			t.Fatalf("strict summary must not contain %q", forbidden)
		}
	}
	if summary.FailedTestCase == nil {
		t.Fatal("wrong answer must still report the failing index")
	}
	failedKeys := marshalKeys(t, summary.FailedTestCase)
	if _, ok := failedKeys["isHidden"]; ok {
		t.Fatal("strict mode must not reveal the hidden flag")
	}
}

func TestLeetcodeSummaryExposesOutput(t *testing.T) {
	t.Parallel()
	submission, grading := gradedSubmission(domain.SubmissionWrongAnswer)
	limits := domain.EffectiveConstraints{TimeLimitMs: 2000, MemoryLimitKb: 128 * 1024}

	summary := sanitizerWith(config.ResultModeLeetcode).SubmissionSummary(submission, grading, limits)
	if summary.Stdout == nil || *summary.Stdout != "3\n" {
		t.Fatalf("expected stdout, got %+v", summary.Stdout)
	}
	if summary.FailedTestCase == nil || summary.FailedTestCase.IsHidden == nil || !*summary.FailedTestCase.IsHidden {
		t.Fatalf("expected hidden flag on failed test, got %+v", summary.FailedTestCase)
	}
	if summary.FailedTestCase.Input != nil {
		t.Fatal("hidden test input must never be exposed")
	}
}

func TestHiddenTestRedactionIgnoresMode(t *testing.T) {
	t.Parallel()
	for _, mode := range []config.ResultMode{config.ResultModeStrict, config.ResultModeLeetcode} {
		submission, grading := gradedSubmission(domain.SubmissionWrongAnswer)
		limits := domain.EffectiveConstraints{TimeLimitMs: 2000}

		summary := sanitizerWith(mode).SubmissionSummary(submission, grading, limits)
		failed := summary.FailedTestCase
		if failed == nil {
			t.Fatalf("mode %s: expected failed test case", mode)
		}
		if failed.Input != nil || failed.ExpectedOutput != nil || failed.ActualOutput != nil {
			t.Fatalf("mode %s: hidden test content leaked: %+v", mode, failed)
		}
		if failed.Index != 1 {
			t.Fatalf("mode %s: expected index 1, got %d", mode, failed.Index)
		}
	}
}

func TestFailedTestCaseOnlyOnWrongAnswer(t *testing.T) {
	t.Parallel()
	for _, status := range []domain.SubmissionStatus{
		domain.SubmissionAccepted,
		domain.SubmissionCompileError,
		domain.SubmissionTimeLimitExceeded,
	} {
		submission, grading := gradedSubmission(status)
		summary := sanitizerWith(config.ResultModeLeetcode).SubmissionSummary(submission, grading, domain.EffectiveConstraints{})
		if summary.FailedTestCase != nil {
			t.Fatalf("status %s must not carry a failed test case", status)
		}
	}
}

func TestCompileOutputOnlyOnCompileError(t *testing.T) {
	t.Parallel()
	submission, grading := gradedSubmission(domain.SubmissionCompileError)
	grading.HasCompileError = true
	grading.CompileOutput = "SyntaxError: invalid syntax"

	summary := sanitizerWith(config.ResultModeLeetcode).SubmissionSummary(submission, grading, domain.EffectiveConstraints{})
	if summary.CompileOutput == nil || *summary.CompileOutput != "SyntaxError: invalid syntax" {
		t.Fatalf("expected compile output, got %+v", summary.CompileOutput)
	}

	submission2, grading2 := gradedSubmission(domain.SubmissionWrongAnswer)
	summary2 := sanitizerWith(config.ResultModeLeetcode).SubmissionSummary(submission2, grading2, domain.EffectiveConstraints{})
	if summary2.CompileOutput != nil {
		t.Fatalf("expected no compile output, got %+v", summary2.CompileOutput)
	}
}

func TestSubmissionRecordRespectsMode(t *testing.T) {
	t.Parallel()
	submission, _ := gradedSubmission(domain.SubmissionAccepted)

	strict := sanitizerWith(config.ResultModeStrict).SubmissionRecord(submission)
	if strict.Stdout != nil || strict.Stderr != nil {
		t.Fatalf("strict record must omit output, got %+v", strict)
	}

	open := sanitizerWith(config.ResultModeLeetcode).SubmissionRecord(submission)
	if open.Stdout == nil || *open.Stdout != "3\n" {
		t.Fatalf("expected stdout on record, got %+v", open.Stdout)
	}
	if open.Status != domain.SubmissionAccepted || open.PassedTestCases != 1 {
		t.Fatalf("record fields wrong: %+v", open)
	}
}
