package secondary

import (
	"context"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// JudgeClient is the boundary to the remote code-execution service.
type JudgeClient interface {
	// ListRuntimes fetches the language/version runtimes the judge supports.
	ListRuntimes(ctx context.Context) ([]domain.Runtime, error)

	// Execute runs one request against the judge and returns the normalized result.
	Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error)
}
