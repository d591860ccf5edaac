package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"gitlab.com/codelab-2025.net/internal/config"
	"gitlab.com/codelab-2025.net/internal/core/ports/primary"
	"gitlab.com/codelab-2025.net/internal/core/ports/secondary"
	"gitlab.com/codelab-2025.net/internal/domain"
	"gitlab.com/codelab-2025.net/internal/static/errs"
)

const serviceName = "judge"

// maxErrorBodyBytes bounds how much of an upstream error body is kept for
// diagnostics.
const maxErrorBodyBytes = 4 << 10

var _ secondary.JudgeClient = &Client{}

// Client implements the JudgeClient port over the judge's HTTP/JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      *RetryPolicy
	clock      primary.Clock
	logger     primary.Logger
}

// NewClient creates a new judge HTTP client
func NewClient(cfg *config.JudgeConfig, clock primary.Clock, logger primary.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		retry:      NewRetryPolicy(cfg.MaxAttempts, clock.Sleep),
		clock:      clock,
		logger:     logger,
	}
}

type runtimePayload struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}

// ListRuntimes fetches the judge's runtime list. A single GET, no retries:
// the runtime catalog caches the answer and callers treat failures as
// best-effort where the contract allows.
func (c *Client) ListRuntimes(ctx context.Context) ([]domain.Runtime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runtimes", nil)
	if err != nil {
		return nil, errs.ExternalService(serviceName, "failed to build runtimes request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.ExternalService(serviceName, "runtimes request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, errs.ExternalService(serviceName,
			fmt.Sprintf("runtimes request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var payload []runtimePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errs.ExternalService(serviceName, "failed to decode runtimes response", err)
	}

	runtimes := make([]domain.Runtime, 0, len(payload))
	for _, p := range payload {
		runtimes = append(runtimes, domain.Runtime{
			Language: p.Language,
			Version:  p.Version,
			Aliases:  p.Aliases,
		})
	}
	return runtimes, nil
}

type filePayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type executePayload struct {
	Language           string        `json:"language"`
	Version            string        `json:"version"`
	Files              []filePayload `json:"files"`
	Stdin              string        `json:"stdin"`
	RunTimeout         int64         `json:"run_timeout,omitempty"`
	CompileTimeout     int64         `json:"compile_timeout,omitempty"`
	RunMemoryLimit     int64         `json:"run_memory_limit,omitempty"`
	CompileMemoryLimit int64         `json:"compile_memory_limit,omitempty"`
}

// Execute runs one request against the judge under the retry policy.
func (c *Client) Execute(ctx context.Context, execReq *domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	payload := executePayload{
		Language:           execReq.Language,
		Version:            execReq.Version,
		Files:              []filePayload{{Name: "main", Content: execReq.SourceCode}},
		Stdin:              execReq.Stdin,
		RunTimeout:         execReq.RunTimeoutMs,
		CompileTimeout:     execReq.CompileTimeoutMs,
		RunMemoryLimit:     execReq.MemoryLimitBytes,
		CompileMemoryLimit: execReq.MemoryLimitBytes,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.ExternalService(serviceName, "failed to marshal execute request", err)
	}

	var result *domain.ExecutionResult
	err = c.retry.Do(ctx, func(ctx context.Context) error {
		res, err := c.executeOnce(ctx, body)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		c.logger.Error("Judge execution failed", "language", execReq.Language, "error", err)
		return nil, errs.ExternalService(serviceName, "code execution failed", err)
	}
	return result, nil
}

func (c *Client) executeOnce(ctx context.Context, body []byte) (*domain.ExecutionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isRetryableTransport(err) {
			return nil, &RetryableError{Err: err}
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		statusErr := fmt.Errorf("judge returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		if isRetryableStatus(resp.StatusCode) {
			return nil, &RetryableError{
				Err:        statusErr,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.clock.Now()),
			}
		}
		return nil, statusErr
	}

	var payload executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode execute response: %w", err)
	}
	return normalizeResult(&payload), nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// isRetryableTransport matches timeouts, connection resets and DNS failures.
func isRetryableTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED)
}

// parseRetryAfter honors both forms of the header: delta seconds and HTTP-date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
