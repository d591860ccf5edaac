package domain

// RunStatus classifies the outcome of a single stateless run.
type RunStatus string

const (
	RunStatusSuccess           RunStatus = "SUCCESS"
	RunStatusRuntimeError      RunStatus = "RUNTIME_ERROR"
	RunStatusCompileError      RunStatus = "COMPILE_ERROR"
	RunStatusTimeLimitExceeded RunStatus = "TIME_LIMIT_EXCEEDED"
	// RunStatusOK is the only value strict mode ever reports.
	RunStatusOK RunStatus = "OK"
)

// ExecutionRequest is one round trip to the judge. Transient, never persisted.
type ExecutionRequest struct {
	Language   string
	Version    string
	SourceCode string
	Stdin      string

	RunTimeoutMs     int64
	CompileTimeoutMs int64
	MemoryLimitBytes int64
}

// ExecutionResult is the judge response flattened into one canonical shape.
// The judge's payload varies by language, so most fields are optional.
type ExecutionResult struct {
	Stdout        string
	Stderr        string
	CompileOutput string
	ExitCode      *int
	Signal        *string
	WallTime      *float64 // seconds
	MemoryBytes   *int64

	// CompileFailed is set during normalization: the compile phase reported a
	// non-zero exit code, or produced output with no run phase at all.
	CompileFailed bool
}

// WallTimeMs returns the wall time in milliseconds, zero when unreported.
func (r *ExecutionResult) WallTimeMs() int64 {
	if r.WallTime == nil {
		return 0
	}
	return int64(*r.WallTime * 1000)
}

// MemoryKb returns the peak memory in KB, zero when unreported.
func (r *ExecutionResult) MemoryKb() int64 {
	if r.MemoryBytes == nil {
		return 0
	}
	return *r.MemoryBytes / 1024
}

// EffectiveConstraints are the engine-level limits actually sent to the judge,
// derived from an exercise's declared constraints.
type EffectiveConstraints struct {
	TimeLimitMs      int64 `json:"timeLimitMs"`
	CompileTimeoutMs int64 `json:"compileTimeoutMs"`
	MemoryLimitKb    int64 `json:"memoryLimitKb"`
	MemoryLimitBytes int64 `json:"memoryLimitBytes"`
}
