package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the graded outcome of a submission
type SubmissionStatus string

const (
	SubmissionAccepted          SubmissionStatus = "ACCEPTED"
	SubmissionWrongAnswer       SubmissionStatus = "WRONG_ANSWER"
	SubmissionCompileError      SubmissionStatus = "COMPILE_ERROR"
	SubmissionTimeLimitExceeded SubmissionStatus = "TIME_LIMIT_EXCEEDED"
)

// CodeSubmission is one persisted grading attempt. Records are immutable:
// a new attempt always inserts a new row, there is no in-place re-grading.
type CodeSubmission struct {
	ID              uuid.UUID        `db:"id"`
	UserID          string           `db:"user_id"`
	LessonID        string           `db:"lesson_id"`
	ExerciseID      string           `db:"exercise_id"`
	SourceCode      string           `db:"source_code"`
	Language        string           `db:"language"`
	Version         string           `db:"version"`
	Status          SubmissionStatus `db:"status"`
	Stdout          string           `db:"stdout"`
	Stderr          string           `db:"stderr"`
	ExecutionTimeMs int64            `db:"execution_time_ms"`
	PassedTestCases int              `db:"passed_test_cases"`
	TotalTestCases  int              `db:"total_test_cases"`
	CreatedAt       time.Time        `db:"created_at"`
}

type SubmissionTable struct {
	ID              string
	UserID          string
	LessonID        string
	ExerciseID      string
	SourceCode      string
	Language        string
	Version         string
	Status          string
	Stdout          string
	Stderr          string
	ExecutionTimeMs string
	PassedTestCases string
	TotalTestCases  string
	CreatedAt       string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:              "id",
		UserID:          "user_id",
		LessonID:        "lesson_id",
		ExerciseID:      "exercise_id",
		SourceCode:      "source_code",
		Language:        "language",
		Version:         "version",
		Status:          "status",
		Stdout:          "stdout",
		Stderr:          "stderr",
		ExecutionTimeMs: "execution_time_ms",
		PassedTestCases: "passed_test_cases",
		TotalTestCases:  "total_test_cases",
		CreatedAt:       "created_at",
	}
}

func (SubmissionTable) TableName() string {
	return "code_submissions"
}

// NewCodeSubmission creates a new submission record
func NewCodeSubmission(userID, lessonID, exerciseID, sourceCode, language, version string) *CodeSubmission {
	return &CodeSubmission{
		ID:         uuid.New(),
		UserID:     userID,
		LessonID:   lessonID,
		ExerciseID: exerciseID,
		SourceCode: sourceCode,
		Language:   language,
		Version:    version,
		CreatedAt:  time.Now(),
	}
}
