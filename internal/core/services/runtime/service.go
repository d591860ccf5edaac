package runtime

import (
	"context"

	"gitlab.com/codelab-2025.net/internal/domain"
)

// ICatalogService defines the interface for the judge runtime catalog
type ICatalogService interface {
	// ListRuntimes retrieves the runtimes registered with the judge, served
	// from a TTL cache.
	ListRuntimes(ctx context.Context) ([]domain.Runtime, error)

	// IsSupported reports whether the language/version pair is registered.
	// version "latest" matches any version of the language.
	IsSupported(ctx context.Context, language, version string) (bool, error)

	// ListAvailableRuntimes returns the deduplicated authoring-UI view:
	// languages sorted alphabetically, versions newest-first.
	ListAvailableRuntimes(ctx context.Context) ([]domain.AvailableRuntime, error)
}
