package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.sleeps = append(c.sleeps, d) }

type fakeExercises struct {
	lessons      map[string]*domain.Lesson
	lessonCounts map[string]int
}

func (f *fakeExercises) GetLesson(ctx context.Context, lessonID string) (*domain.Lesson, error) {
	return f.lessons[lessonID], nil
}

func (f *fakeExercises) CountLessonsByCourse(ctx context.Context, courseID string) (int, error) {
	return f.lessonCounts[courseID], nil
}

type fakeSubmissions struct {
	saved   []*domain.CodeSubmission
	saveErr error
}

func (f *fakeSubmissions) SaveSubmission(ctx context.Context, submission *domain.CodeSubmission) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, submission)
	return nil
}

func (f *fakeSubmissions) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.CodeSubmission, error) {
	for _, s := range f.saved {
		if s.ID == submissionID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubmissions) GetSubmissionsByUserAndLesson(ctx context.Context, userID, lessonID string) ([]*domain.CodeSubmission, error) {
	var out []*domain.CodeSubmission
	for _, s := range f.saved {
		if s.UserID == userID && s.LessonID == lessonID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeProgress collapses repeat completions by key, like the real upsert.
type fakeProgress struct {
	completions map[string]int
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{completions: make(map[string]int)}
}

func (f *fakeProgress) MarkCompleted(ctx context.Context, c *domain.LessonCompletion) error {
	key := fmt.Sprintf("%s:%s:%s", c.UserID, c.CourseID, c.LessonID)
	f.completions[key]++
	return nil
}

func (f *fakeProgress) CompletionPercent(ctx context.Context, userID, courseID string, totalLessons int) (float64, error) {
	return 100, nil
}

// scriptedJudge returns pre-programmed results in order and records every call.
type scriptedJudge struct {
	results []*domain.ExecutionResult
	err     error
	calls   []*domain.ExecutionRequest
}

func (f *scriptedJudge) ListRuntimes(ctx context.Context) ([]domain.Runtime, error) {
	return []domain.Runtime{{Language: "python", Version: "3.12.0"}}, nil
}

func (f *scriptedJudge) Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.calls) > len(f.results) {
		return nil, errors.New("scripted judge: no result for call")
	}
	return f.results[len(f.calls)-1], nil
}

// fakeCatalog answers support checks without the real cache.
type fakeCatalog struct {
	supported bool
	err       error
}

func (f *fakeCatalog) ListRuntimes(ctx context.Context) ([]domain.Runtime, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.Runtime{{Language: "python", Version: "3.12.0"}}, nil
}

func (f *fakeCatalog) IsSupported(ctx context.Context, language, version string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.supported, nil
}

func (f *fakeCatalog) ListAvailableRuntimes(ctx context.Context) ([]domain.AvailableRuntime, error) {
	return nil, nil
}

func successResult(stdout string, wallTime float64) *domain.ExecutionResult {
	code := 0
	mem := int64(8 * 1024 * 1024)
	return &domain.ExecutionResult{
		Stdout:      stdout,
		ExitCode:    &code,
		WallTime:    &wallTime,
		MemoryBytes: &mem,
	}
}

func compileErrorResult(output string) *domain.ExecutionResult {
	return &domain.ExecutionResult{
		CompileOutput: output,
		CompileFailed: true,
	}
}

func sumExercise(testCases ...domain.TestCase) *domain.CodingExercise {
	return &domain.CodingExercise{
		ID:           "ex-1",
		Language:     "python",
		Version:      "3.12.0",
		SolutionCode: "print(sum(map(int, input().split())))",
		TestCases:    testCases,
		Constraints:  domain.Constraints{TimeLimitSeconds: 2, MemoryLimitMb: 128},
	}
}

func lessonWith(exercise *domain.CodingExercise) *domain.Lesson {
	return &domain.Lesson{ID: "lesson-1", CourseID: "course-1", Title: "Sums", Exercise: exercise}
}

type testEnv struct {
	service     *ExecutionService
	exercises   *fakeExercises
	submissions *fakeSubmissions
	progress    *fakeProgress
	judge       *scriptedJudge
	catalog     *fakeCatalog
	clock       *fakeClock
	gradingCfg  *config.GradingConfig
	judgeCfg    *config.JudgeConfig
}

func newTestEnv(lesson *domain.Lesson, judge *scriptedJudge) *testEnv {
	env := &testEnv{
		exercises: &fakeExercises{
			lessons:      map[string]*domain.Lesson{},
			lessonCounts: map[string]int{"course-1": 4},
		},
		submissions: &fakeSubmissions{},
		progress:    newFakeProgress(),
		judge:       judge,
		catalog:     &fakeCatalog{supported: true},
		clock:       &fakeClock{now: time.Unix(1700000000, 0)},
		gradingCfg: &config.GradingConfig{
			ResultMode:                   config.ResultModeLeetcode,
			Profile:                      config.ProfileLearning,
			ManagedMemoryMultiplier:      2.0,
			ManagedMemoryFloorMb:         256,
			ManagedMemoryCeilingMb:       1024,
			ManagedMemoryLearningFloorMb: 768,
		},
		judgeCfg: &config.JudgeConfig{SubmitDelay: 250 * time.Millisecond},
	}
	if lesson != nil {
		env.exercises.lessons[lesson.ID] = lesson
	}
	env.service = NewExecutionService(
		env.exercises,
		env.submissions,
		env.progress,
		env.judge,
		env.catalog,
		env.gradingCfg,
		env.judgeCfg,
		env.clock,
		nopLogger{},
	)
	return env
}
