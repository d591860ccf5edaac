package judge

import "gitlab.com/codelab-2025.net/internal/domain"

// The judge's payload shape varies by language: wall time arrives under one of
// several names and the generic memory field has an ambiguous unit. The
// priority lists below are the single place that ambiguity is resolved.
//
//	time:   time → wall_time → cpu_time  (seconds)
//	memory: memory_bytes → memory        (bytes)
type phasePayload struct {
	Stdout      string   `json:"stdout"`
	Stderr      string   `json:"stderr"`
	Output      string   `json:"output"`
	Code        *int     `json:"code"`
	Signal      *string  `json:"signal"`
	Time        *float64 `json:"time"`
	WallTime    *float64 `json:"wall_time"`
	CPUTime     *float64 `json:"cpu_time"`
	MemoryBytes *int64   `json:"memory_bytes"`
	Memory      *int64   `json:"memory"`
}

type executeResponse struct {
	Language string        `json:"language"`
	Version  string        `json:"version"`
	Compile  *phasePayload `json:"compile"`
	Run      *phasePayload `json:"run"`
}

func (p *phasePayload) wallTime() *float64 {
	if p.Time != nil {
		return p.Time
	}
	if p.WallTime != nil {
		return p.WallTime
	}
	return p.CPUTime
}

func (p *phasePayload) memoryBytes() *int64 {
	if p.MemoryBytes != nil {
		return p.MemoryBytes
	}
	return p.Memory
}

func (p *phasePayload) combinedOutput() string {
	if p.Output != "" {
		return p.Output
	}
	if p.Stderr != "" {
		return p.Stderr
	}
	return p.Stdout
}

// normalizeResult flattens the compile/run sub-objects into the canonical
// ExecutionResult.
func normalizeResult(resp *executeResponse) *domain.ExecutionResult {
	result := &domain.ExecutionResult{}

	if compile := resp.Compile; compile != nil {
		result.CompileOutput = compile.combinedOutput()
		if compile.Code != nil && *compile.Code != 0 {
			result.CompileFailed = true
		} else if resp.Run == nil && (compile.Stderr != "" || compile.Output != "") {
			// Some runtimes report a failed compile with no exit code at all;
			// output without a run phase is the only signal left.
			result.CompileFailed = true
		}
	}

	if run := resp.Run; run != nil {
		result.Stdout = run.Stdout
		result.Stderr = run.Stderr
		result.ExitCode = run.Code
		result.Signal = run.Signal
		result.WallTime = run.wallTime()
		result.MemoryBytes = run.memoryBytes()
	}

	return result
}
