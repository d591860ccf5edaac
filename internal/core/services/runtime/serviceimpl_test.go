package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"gitlab.com/codelab-2025.net/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeJudge struct {
	runtimes []domain.Runtime
	err      error
	calls    int
}

func (f *fakeJudge) ListRuntimes(ctx context.Context) ([]domain.Runtime, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.runtimes, nil
}

func (f *fakeJudge) Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	return nil, errors.New("not implemented")
}

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func sampleRuntimes() []domain.Runtime {
	return []domain.Runtime{
		{Language: "python", Version: "3.10.0", Aliases: []string{"py", "python3"}},
		{Language: "python", Version: "3.12.0", Aliases: []string{"py", "python3"}},
		{Language: "java", Version: "15.0.2", Aliases: nil},
		{Language: "go", Version: "1.16.2", Aliases: []string{"golang"}},
	}
}

func newCatalog(judge *fakeJudge, clock *fakeClock) *CatalogService {
	return NewCatalogService(judge, clock, 10*time.Minute, nopLogger{})
}

func TestListRuntimesCachesWithinTTL(t *testing.T) {
	t.Parallel()
	judge := &fakeJudge{runtimes: sampleRuntimes()}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	catalog := newCatalog(judge, clock)

	ctx := context.Background()
	if _, err := catalog.ListRuntimes(ctx); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	clock.advance(5 * time.Minute)
	if _, err := catalog.ListRuntimes(ctx); err != nil {
		t.Fatalf("cached fetch failed: %v", err)
	}
	if judge.calls != 1 {
		t.Fatalf("expected 1 upstream call within TTL, got %d", judge.calls)
	}

	clock.advance(6 * time.Minute)
	if _, err := catalog.ListRuntimes(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if judge.calls != 2 {
		t.Fatalf("expected refresh after TTL, got %d calls", judge.calls)
	}
}

func TestListRuntimesPropagatesFetchError(t *testing.T) {
	t.Parallel()
	judge := &fakeJudge{err: errors.New("connection refused")}
	catalog := newCatalog(judge, &fakeClock{now: time.Unix(1000, 0)})

	if _, err := catalog.ListRuntimes(context.Background()); err == nil {
		t.Fatal("expected an error when the judge is unreachable")
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		language string
		version  string
		want     bool
	}{
		{name: "exact", language: "python", version: "3.10.0", want: true},
		{name: "case-insensitive", language: "Python", version: "3.12.0", want: true},
		{name: "alias", language: "golang", version: "1.16.2", want: true},
		{name: "latest-any-version", language: "java", version: "latest", want: true},
		{name: "latest-alias", language: "py", version: "latest", want: true},
		{name: "wrong-version", language: "java", version: "11.0.0", want: false},
		{name: "unknown-language", language: "cobol", version: "latest", want: false},
	}
	judge := &fakeJudge{runtimes: sampleRuntimes()}
	catalog := newCatalog(judge, &fakeClock{now: time.Unix(1000, 0)})
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.IsSupported(context.Background(), tt.language, tt.version)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v for %s@%s, got %v", tt.want, tt.language, tt.version, got)
			}
		})
	}
}

func TestListAvailableRuntimes(t *testing.T) {
	t.Parallel()
	judge := &fakeJudge{runtimes: append(sampleRuntimes(), domain.Runtime{Language: "Python", Version: "3.10.0"})}
	catalog := newCatalog(judge, &fakeClock{now: time.Unix(1000, 0)})

	available, err := catalog.ListAvailableRuntimes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(available) != 3 {
		t.Fatalf("expected 3 languages, got %d", len(available))
	}
	if available[0].Language != "go" || available[1].Language != "java" || available[2].Language != "python" {
		t.Fatalf("expected alphabetical language order, got %+v", available)
	}
	python := available[2]
	if len(python.Versions) != 2 {
		t.Fatalf("expected deduplicated python versions, got %v", python.Versions)
	}
	if python.Versions[0] != "3.12.0" || python.Versions[1] != "3.10.0" {
		t.Fatalf("expected newest-first versions, got %v", python.Versions)
	}
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int // sign
	}{
		{"3.12.0", "3.10.0", 1},
		{"3.10.0", "3.10.0", 0},
		{"1.9.0", "1.10.0", -1},
		{"10.0", "9.9", 1},
		{"1.0.1", "1.0", 1},
	}
	for _, tt := range tests {
		got := compareVersions(tt.a, tt.b)
		switch {
		case tt.want > 0 && got <= 0:
			t.Fatalf("expected %s > %s, got %d", tt.a, tt.b, got)
		case tt.want < 0 && got >= 0:
			t.Fatalf("expected %s < %s, got %d", tt.a, tt.b, got)
		case tt.want == 0 && got != 0:
			t.Fatalf("expected %s == %s, got %d", tt.a, tt.b, got)
		}
	}
}
