package runtime

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2025.net/internal/domain"
)

var _ ICatalogService = &CatalogService{}

// cacheEntry holds one fetched runtime list and its expiry. Kept as a value
// object on the service instance, never as package state.
type cacheEntry struct {
	runtimes  []domain.Runtime
	expiresAt time.Time
}

func (e *cacheEntry) valid(now time.Time) bool {
	return e.runtimes != nil && now.Before(e.expiresAt)
}

// CatalogService implements the ICatalogService interface
type CatalogService struct {
	judge  secondary.JudgeClient
	logger primary.Logger
	clock  primary.Clock
	ttl    time.Duration

	mu    sync.Mutex
	cache cacheEntry
}

// NewCatalogService creates a new runtime catalog service
func NewCatalogService(judge secondary.JudgeClient, clock primary.Clock, ttl time.Duration, logger primary.Logger) *CatalogService {
	return &CatalogService{
		judge:  judge,
		logger: logger,
		clock:  clock,
		ttl:    ttl,
	}
}

// ListRuntimes retrieves the runtimes registered with the judge
func (s *CatalogService) ListRuntimes(ctx context.Context) ([]domain.Runtime, error) {
	now := s.clock.Now()

	s.mu.Lock()
	if s.cache.valid(now) {
		cached := s.cache.runtimes
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	// Fetch outside the lock: a redundant concurrent refresh is harmless,
	// last writer wins on the expiring entry.
	runtimes, err := s.judge.ListRuntimes(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch runtimes from judge", "error", err)
		return nil, fmt.Errorf("failed to fetch runtimes: %w", err)
	}

	s.mu.Lock()
	s.cache = cacheEntry{runtimes: runtimes, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	s.logger.Debug("Refreshed runtime cache", "count", len(runtimes))
	return runtimes, nil
}

// IsSupported reports whether the language/version pair is registered
func (s *CatalogService) IsSupported(ctx context.Context, language, version string) (bool, error) {
	runtimes, err := s.ListRuntimes(ctx)
	if err != nil {
		return false, err
	}

	for i := range runtimes {
		if !runtimeMatchesLanguage(&runtimes[i], language) {
			continue
		}
		if strings.EqualFold(version, "latest") || runtimes[i].Version == version {
			return true, nil
		}
	}
	return false, nil
}

// ListAvailableRuntimes returns the deduplicated authoring-UI view
func (s *CatalogService) ListAvailableRuntimes(ctx context.Context) ([]domain.AvailableRuntime, error) {
	runtimes, err := s.ListRuntimes(ctx)
	if err != nil {
		return nil, err
	}

	byLanguage := make(map[string][]string)
	for i := range runtimes {
		lang := strings.ToLower(runtimes[i].Language)
		versions := byLanguage[lang]
		if !containsVersion(versions, runtimes[i].Version) {
			byLanguage[lang] = append(versions, runtimes[i].Version)
		}
	}

	available := make([]domain.AvailableRuntime, 0, len(byLanguage))
	for lang, versions := range byLanguage {
		sort.Slice(versions, func(i, j int) bool {
			return compareVersions(versions[i], versions[j]) > 0
		})
		available = append(available, domain.AvailableRuntime{Language: lang, Versions: versions})
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].Language < available[j].Language
	})
	return available, nil
}

func runtimeMatchesLanguage(rt *domain.Runtime, language string) bool {
	if strings.EqualFold(rt.Language, language) {
		return true
	}
	for _, alias := range rt.Aliases {
		if strings.EqualFold(alias, language) {
			return true
		}
	}
	return false
}

func containsVersion(versions []string, version string) bool {
	for _, v := range versions {
		if v == version {
			return true
		}
	}
	return false
}

// compareVersions compares dotted version strings numerically per segment,
// falling back to string comparison for non-numeric segments.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if an != bn {
				return an - bn
			}
			continue
		}
		if cmp := strings.Compare(as[i], bs[i]); cmp != 0 {
			return cmp
		}
	}
	return len(as) - len(bs)
}
