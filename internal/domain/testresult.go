package domain

// TestCaseResult represents the result of a single test case execution
type TestCaseResult struct {
	Index          int
	Passed         bool
	Input          string
	ExpectedOutput string
	ActualOutput   string
	Stderr         string
	IsHidden       bool
	CompileFailed  bool
	WallTimeMs     int64
	MemoryKb       int64
}

// GradingResult aggregates the per-test results of one submission attempt
// before sanitization.
type GradingResult struct {
	Status          SubmissionStatus
	TestCaseResults []TestCaseResult
	PassedTestCases int
	TotalTestCases  int
	HasCompileError bool
	CompileOutput   string
	// TotalTimeMs is the sum of per-test wall times, MaxTimeMs the slowest test.
	TotalTimeMs int64
	MaxTimeMs   int64
	MaxMemoryKb int64
}

// FirstFailure returns the first failing test case result, nil when all passed.
func (g *GradingResult) FirstFailure() *TestCaseResult {
	for i := range g.TestCaseResults {
		if !g.TestCaseResults[i].Passed {
			return &g.TestCaseResults[i]
		}
	}
	return nil
}
