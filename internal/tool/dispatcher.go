package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quocvuong92/askweb/internal/constants"
	"github.com/quocvuong92/askweb/internal/logging"
)

// MaxDispatchAttempts is the total number of delivery attempts for one
// invocation. Only transport failures are retried; any received HTTP
// response ends the attempt loop.
const MaxDispatchAttempts = 3

// CalculateDispatchBackoff returns the wait after a failed attempt:
// 2s after the first failure, 4s after the second.
func CalculateDispatchBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// Client dispatches tool invocations to the tool service
type Client struct {
	baseURL     string
	httpClient  *http.Client
	probeClient *http.Client
	backoff     func(attempt int) time.Duration
}

// NewClient creates a dispatcher for the tool service at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.ToolCallTimeout,
		},
		probeClient: &http.Client{
			Timeout: constants.HealthProbeTimeout,
		},
		backoff: CalculateDispatchBackoff,
	}
}

// Healthy reports whether the tool service answers its health probe
func (c *Client) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.probeClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// Dispatch sends one tool invocation to the tool service. Service-level
// failures come back as error-shaped Results so the conversation can
// continue; the Go error return is reserved for context cancellation.
func (c *Client) Dispatch(ctx context.Context, inv Invocation) (Result, error) {
	if inv.Name == "" {
		return Result{Error: "no tool name"}, nil
	}
	if inv.Parameters.Query == "" {
		return Result{Error: "no query"}, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("dispatch cancelled: %w", err)
	}

	if !c.Healthy(ctx) {
		return Result{Error: "service not available"}, nil
	}

	body, err := json.Marshal(inv)
	if err != nil {
		return Result{Error: fmt.Sprintf("failed to marshal invocation: %v", err)}, nil
	}

	requestID := uuid.New().String()

	var lastErr error
	for attempt := 1; attempt <= MaxDispatchAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("dispatch cancelled: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tool_call", bytes.NewBuffer(body))
		if err != nil {
			return Result{Error: fmt.Sprintf("failed to create request: %v", err)}, nil
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		resp, err := c.httpClient.Do(req)
		if err == nil {
			// Any received response ends the attempt loop
			return c.decodeResponse(resp), nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("dispatch cancelled: %w", ctx.Err())
		}

		logging.Debug("tool call attempt failed", logging.Fields{
			"attempt":    attempt,
			"request_id": requestID,
			"error":      err.Error(),
		})

		if attempt < MaxDispatchAttempts {
			select {
			case <-ctx.Done():
				return Result{}, fmt.Errorf("dispatch cancelled: %w", ctx.Err())
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	logging.Warn("tool service unresponsive", logging.Fields{
		"request_id": requestID,
		"attempts":   MaxDispatchAttempts,
		"error":      lastErr.Error(),
	})
	return Result{Error: "service not responding after retries"}, nil
}

// decodeResponse turns a received HTTP response into a Result.
// Well-formed error bodies pass through as-is; everything else maps to
// a status-code or malformed-response error.
func (c *Client) decodeResponse(resp *http.Response) Result {
	defer func() { _ = resp.Body.Close() }()

	var result Result
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		err = json.Unmarshal(body, &result)
	}
	if err != nil {
		if resp.StatusCode != http.StatusOK {
			return Result{Error: fmt.Sprintf("tool service error: status code %d", resp.StatusCode)}
		}
		return Result{Error: "malformed response from tool service"}
	}

	if result.Error == "" && resp.StatusCode != http.StatusOK {
		return Result{Error: fmt.Sprintf("tool service error: status code %d", resp.StatusCode)}
	}

	return result
}
