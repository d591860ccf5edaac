package judge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/domain"
	"gitlab.com/codelab-2025.net/internal/static/errs"
)

type testClock struct{}

func (testClock) Now() time.Time      { return time.Unix(1700000000, 0) }
func (testClock) Sleep(time.Duration) {}

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestClient(baseURL string, maxAttempts int) *Client {
	cfg := &config.JudgeConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		MaxAttempts:    maxAttempts,
	}
	return NewClient(cfg, testClock{}, nopLogger{})
}

func sampleRequest() *domain.ExecutionRequest {
	return &domain.ExecutionRequest{
		Language:         "python",
		Version:          "3.12.0",
		SourceCode:       "print(sum(map(int, input().split())))",
		Stdin:            "2 3",
		RunTimeoutMs:     2000,
		CompileTimeoutMs: 10000,
		MemoryLimitBytes: 128 * 1024 * 1024,
	}
}

func TestListRuntimes(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runtimes" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"language":"python","version":"3.12.0","aliases":["py"]}]`))
	}))
	defer srv.Close()

	runtimes, err := newTestClient(srv.URL, 3).ListRuntimes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runtimes) != 1 || runtimes[0].Language != "python" || runtimes[0].Aliases[0] != "py" {
		t.Fatalf("unexpected runtimes: %+v", runtimes)
	}
}

func TestListRuntimesUpstreamError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).ListRuntimes(context.Background())
	if !errs.IsExternalService(err) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
}

func TestExecuteRetriesThenSucceeds(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"language":"python","version":"3.12.0","run":{"stdout":"5\n","code":0,"time":0.1,"memory_bytes":1048576}}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL, 3).Execute(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", calls)
	}
	if result.Stdout != "5\n" {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
}

func TestExecuteExhaustsRetries(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Execute(context.Background(), sampleRequest())
	if !errs.IsExternalService(err) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", calls)
	}
}

func TestExecuteDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unknown language", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Execute(context.Background(), sampleRequest())
	if !errs.IsExternalService(err) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call for a 4xx, got %d", calls)
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()
	now := time.Unix(1700000000, 0).UTC()
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "empty", value: "", want: 0},
		{name: "seconds", value: "5", want: 5 * time.Second},
		{name: "negative-seconds", value: "-1", want: 0},
		{name: "http-date", value: now.Add(10 * time.Second).Format(http.TimeFormat), want: 10 * time.Second},
		{name: "past-date", value: now.Add(-10 * time.Second).Format(http.TimeFormat), want: 0},
		{name: "garbage", value: "soon", want: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseRetryAfter(tt.value, now); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
