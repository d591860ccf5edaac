package constraint

import (
	"strings"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/domain"
)

// managedRuntimes are the JVM/.NET-family languages whose engines carry fixed
// startup overhead. They get an engine-level memory limit decoupled from the
// exercise's declared limit so a correct solution does not OOM on startup.
var managedRuntimes = map[string]bool{
	"java":       true,
	"kotlin":     true,
	"scala":      true,
	"groovy":     true,
	"csharp":     true,
	"fsharp":     true,
	"basic":      true,
	"csharp.net": true,
	"fsharp.net": true,
	"basic.net":  true,
	"vb":         true,
	"powershell": true,
}

// Resolver converts an exercise's declared constraints into the execution
// parameters actually sent to the judge.
type Resolver struct {
	cfg *config.GradingConfig
}

func NewResolver(cfg *config.GradingConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// IsManagedRuntime reports whether the language gets managed-runtime memory
// headroom.
func IsManagedRuntime(language string) bool {
	return managedRuntimes[strings.ToLower(language)]
}

// Resolve derives the engine-level limits for one exercise. Time limits are
// profile-independent; memory limits follow the managed-runtime policy.
func (r *Resolver) Resolve(language string, c domain.Constraints) domain.EffectiveConstraints {
	timeSec := c.TimeLimitSeconds
	if timeSec == 0 {
		timeSec = domain.DefaultTimeLimitSeconds
	}
	if timeSec < 0 {
		timeSec = 0
	}
	timeLimitMs := int64(timeSec * 1000)
	if timeLimitMs < 1 {
		timeLimitMs = 1
	}

	compileTimeoutMs := timeLimitMs * 3
	if compileTimeoutMs < 10000 {
		compileTimeoutMs = 10000
	}

	memoryMb := c.MemoryLimitMb
	if memoryMb == 0 {
		memoryMb = domain.DefaultMemoryLimitMb
	}
	if memoryMb < 0 {
		memoryMb = 0
	}
	memoryMb = r.engineMemoryMb(language, memoryMb)

	memoryKb := int64(memoryMb * 1024)
	if memoryKb < 1 {
		memoryKb = 1
	}

	return domain.EffectiveConstraints{
		TimeLimitMs:      timeLimitMs,
		CompileTimeoutMs: compileTimeoutMs,
		MemoryLimitKb:    memoryKb,
		MemoryLimitBytes: memoryKb * 1024,
	}
}

func (r *Resolver) engineMemoryMb(language string, declaredMb float64) float64 {
	if !IsManagedRuntime(language) {
		return declaredMb
	}

	var engineMb float64
	switch r.cfg.Profile {
	case config.ProfileJudge:
		engineMb = declaredMb
		if scaled := declaredMb * r.cfg.ManagedMemoryMultiplier; scaled > engineMb {
			engineMb = scaled
		}
		if floor := float64(r.cfg.ManagedMemoryFloorMb); engineMb < floor {
			engineMb = floor
		}
	default:
		engineMb = float64(r.cfg.ManagedMemoryLearningFloorMb)
		if floor := float64(r.cfg.ManagedMemoryFloorMb); engineMb < floor {
			engineMb = floor
		}
	}

	if ceiling := float64(r.cfg.ManagedMemoryCeilingMb); ceiling > 0 && engineMb > ceiling {
		engineMb = ceiling
	}
	return engineMb
}
