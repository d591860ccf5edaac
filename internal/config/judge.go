package config

import "time"

type JudgeConfig struct {
	// BaseURL is the root of the remote execution service's HTTP API.
	BaseURL string

	// RequestTimeout bounds one HTTP round trip to the judge, independent of
	// the judge's own compile/run timeouts.
	RequestTimeout time.Duration

	// MaxAttempts is the retry budget per execution request.
	MaxAttempts int

	// SubmitDelay is inserted before every test-case request after the first
	// to stay inside the judge's rate limits.
	SubmitDelay time.Duration

	// RuntimeCacheTTL is how long the runtime list stays cached.
	RuntimeCacheTTL time.Duration
}

func NewJudgeConfig() *JudgeConfig {
	return &JudgeConfig{
		BaseURL:         getEnv("JUDGE_BASE_URL", "http://localhost:2000/api/v2"),
		RequestTimeout:  time.Duration(getIntEnv("JUDGE_REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		MaxAttempts:     getIntEnv("JUDGE_MAX_ATTEMPTS", 3),
		SubmitDelay:     time.Duration(getIntEnv("JUDGE_SUBMIT_DELAY_MS", 250)) * time.Millisecond,
		RuntimeCacheTTL: time.Duration(getIntEnv("RUNTIME_CACHE_TTL_SEC", 600)) * time.Second,
	}
}
