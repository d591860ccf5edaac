package execution

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// IExecutionService defines the interface for running and grading learner code
type IExecutionService interface {
	// Run executes code against custom input without grading or persistence.
	Run(ctx context.Context, lessonID string, req *RunRequest) (*RunResponse, error)

	// Submit grades code against the exercise's test cases, persists one
	// submission record and signals lesson completion on acceptance.
	Submit(ctx context.Context, lessonID, userID string, req *SubmitRequest) (*SubmissionSummary, error)

	// GetSubmission retrieves one of the caller's past submissions.
	GetSubmission(ctx context.Context, userID string, submissionID uuid.UUID) (*SubmissionRecord, error)

	// ListSubmissions lists the caller's submissions for a lesson, newest first.
	ListSubmissions(ctx context.Context, userID, lessonID string) ([]*SubmissionRecord, error)
}

// RunRequest is a stateless "run with custom input" request.
type RunRequest struct {
	SourceCode string `json:"sourceCode"`
	Language   string `json:"language"`
	Version    string `json:"version"`
	Stdin      string `json:"stdin"`
}

// SubmitRequest is a "submit for grading" request.
type SubmitRequest struct {
	SourceCode string `json:"sourceCode"`
	Language   string `json:"language"`
	Version    string `json:"version"`
}

// RunResponse is the sanitized run-preview payload. In strict mode every
// field except Status is omitted.
type RunResponse struct {
	Status        domain.RunStatus             `json:"status"`
	Stdout        *string                      `json:"stdout,omitempty"`
	Stderr        *string                      `json:"stderr,omitempty"`
	CompileOutput *string                      `json:"compileOutput,omitempty"`
	ExitCode      *int                         `json:"exitCode,omitempty"`
	WallTimeMs    *int64                       `json:"wallTimeMs,omitempty"`
	MemoryKb      *int64                       `json:"memoryKb,omitempty"`
	Constraints   *domain.EffectiveConstraints `json:"constraints,omitempty"`
}

// FailedTestCase describes the first failing test of a wrong answer. Hidden
// tests expose their index only; strict mode additionally drops the hidden
// flag itself.
type FailedTestCase struct {
	Index          int     `json:"index"`
	IsHidden       *bool   `json:"isHidden,omitempty"`
	Input          *string `json:"input,omitempty"`
	ExpectedOutput *string `json:"expectedOutput,omitempty"`
	ActualOutput   *string `json:"actualOutput,omitempty"`
}

// SubmissionSummary is the sanitized grading outcome returned to the caller.
type SubmissionSummary struct {
	SubmissionID    uuid.UUID               `json:"submissionId"`
	Status          domain.SubmissionStatus `json:"status"`
	PassedTestCases int                     `json:"passedTestCases"`
	TotalTestCases  int                     `json:"totalTestCases"`
	RuntimeMs       int64                   `json:"runtimeMs"`
	TimeLimitMs     int64                   `json:"timeLimitMs"`
	MemoryKb        int64                   `json:"memoryKb"`
	MemoryLimitKb   int64                   `json:"memoryLimitKb"`
	Stdout          *string                 `json:"stdout,omitempty"`
	Stderr          *string                 `json:"stderr,omitempty"`
	CompileOutput   *string                 `json:"compileOutput,omitempty"`
	FailedTestCase  *FailedTestCase         `json:"failedTestCase,omitempty"`
}

// SubmissionRecord is the sanitized read view of a persisted submission.
type SubmissionRecord struct {
	ID              uuid.UUID               `json:"id"`
	LessonID        string                  `json:"lessonId"`
	ExerciseID      string                  `json:"exerciseId"`
	Language        string                  `json:"language"`
	Version         string                  `json:"version"`
	Status          domain.SubmissionStatus `json:"status"`
	PassedTestCases int                     `json:"passedTestCases"`
	TotalTestCases  int                     `json:"totalTestCases"`
	ExecutionTimeMs int64                   `json:"executionTimeMs"`
	Stdout          *string                 `json:"stdout,omitempty"`
	Stderr          *string                 `json:"stderr,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
}
