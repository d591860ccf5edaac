package config

// ResultMode controls how much of the raw execution output reaches the caller.
type ResultMode string

const (
	// ResultModeStrict withholds program output: run previews collapse to a
	// bare OK status and submission summaries omit stdout/stderr.
	ResultModeStrict ResultMode = "strict"

	// ResultModeLeetcode exposes full diagnostics (the default).
	ResultModeLeetcode ResultMode = "leetcode"
)

// ExecutionProfile selects the constraint-enforcement philosophy.
type ExecutionProfile string

const (
	// ProfileLearning is startup-tolerant: managed runtimes get a generous
	// memory floor and wall time is never graded against the limit.
	ProfileLearning ExecutionProfile = "learning"

	// ProfileJudge enforces limits close to the declared constraints and
	// classifies TIME_LIMIT_EXCEEDED.
	ProfileJudge ExecutionProfile = "judge"
)

type GradingConfig struct {
	ResultMode ResultMode
	Profile    ExecutionProfile

	// Managed-runtime (JVM/.NET family) memory policy. These runtimes need
	// headroom beyond the exercise's declared limit to survive startup.
	ManagedMemoryMultiplier      float64
	ManagedMemoryFloorMb         int
	ManagedMemoryCeilingMb       int // 0 disables the cap
	ManagedMemoryLearningFloorMb int
}

func NewGradingConfig() *GradingConfig {
	mode := ResultMode(getEnv("RESULT_MODE", string(ResultModeLeetcode)))
	if mode != ResultModeStrict && mode != ResultModeLeetcode {
		mode = ResultModeLeetcode
	}
	profile := ExecutionProfile(getEnv("EXECUTION_PROFILE", string(ProfileLearning)))
	if profile != ProfileLearning && profile != ProfileJudge {
		profile = ProfileLearning
	}
	return &GradingConfig{
		ResultMode:                   mode,
		Profile:                      profile,
		ManagedMemoryMultiplier:      getFloatEnv("MANAGED_MEMORY_MULTIPLIER", 2.0),
		ManagedMemoryFloorMb:         getIntEnv("MANAGED_MEMORY_FLOOR_MB", 256),
		ManagedMemoryCeilingMb:       getIntEnv("MANAGED_MEMORY_CEILING_MB", 1024),
		ManagedMemoryLearningFloorMb: getIntEnv("MANAGED_MEMORY_LEARNING_FLOOR_MB", 768),
	}
}
