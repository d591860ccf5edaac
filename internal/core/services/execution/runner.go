package execution

import (
	"context"
	"fmt"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// Run executes code against custom input. No persistence, no side effects:
// this is the learner's experimentation path.
func (s *ExecutionService) Run(ctx context.Context, lessonID string, req *RunRequest) (*RunResponse, error) {
	_, exercise, err := s.getExercise(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.validateRuntime(ctx, exercise, req.Language, req.Version); err != nil {
		return nil, err
	}

	limits := s.resolver.Resolve(exercise.Language, exercise.Constraints)

	result, err := s.judge.Execute(ctx, &domain.ExecutionRequest{
		Language:         exercise.Language,
		Version:          exercise.Version,
		SourceCode:       req.SourceCode,
		Stdin:            req.Stdin,
		RunTimeoutMs:     limits.TimeLimitMs,
		CompileTimeoutMs: limits.CompileTimeoutMs,
		MemoryLimitBytes: limits.MemoryLimitBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run code: %w", err)
	}

	s.logger.Debug("Run completed",
		"lessonId", lessonID,
		"language", exercise.Language,
		"wallTimeMs", result.WallTimeMs())

	return s.sanitizer.RunPreview(result, limits), nil
}
