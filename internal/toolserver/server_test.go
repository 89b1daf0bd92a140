package toolserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quocvuong92/askweb/internal/search"
)

// searcherFunc adapts a function to the Searcher interface.
type searcherFunc func(ctx context.Context, query string, limit int) []search.Result

func (f searcherFunc) Search(ctx context.Context, query string, limit int) []search.Result {
	return f(ctx, query, limit)
}

func noResults(ctx context.Context, query string, limit int) []search.Result {
	return []search.Result{}
}

func startTestServer(t *testing.T, searcher Searcher) *Server {
	t.Helper()

	srv := New("127.0.0.1:0", searcher)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	started := make(chan struct{})
	go func() {
		for srv.BoundAddr() == "" {
			time.Sleep(5 * time.Millisecond)
		}
		close(started)
	}()
	go func() {
		// The test may have cancelled the context already.
		_ = srv.Start(ctx)
	}()

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("tool server did not start in time")
	}

	return srv
}

func TestHandleHealth(t *testing.T) {
	srv := New(":0", searcherFunc(noResults))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}

	var health healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("expected status ok, got %q", health.Status)
	}
	if health.Service != ServiceName {
		t.Errorf("expected service %q, got %q", ServiceName, health.Service)
	}
	if health.Version == "" {
		t.Error("expected non-empty version")
	}
	if _, err := time.Parse(time.RFC3339, health.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", health.Timestamp, err)
	}
}

func TestHandleHealth_WrongMethod(t *testing.T) {
	srv := New(":0", searcherFunc(noResults))

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	srv.handleHealth(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestHandleToolCall_Success(t *testing.T) {
	var gotQuery string
	var gotLimit int
	searcher := searcherFunc(func(ctx context.Context, query string, limit int) []search.Result {
		gotQuery = query
		gotLimit = limit
		return []search.Result{
			{Title: "Go", URL: "https://go.dev", Description: "The Go programming language"},
			{Title: "Go wiki", URL: "https://go.dev/wiki", Description: "Community wiki"},
		}
	})
	srv := New(":0", searcher)

	body := `{"name":"fetch_web_content","parameters":{"query":"golang"}}`
	req := httptest.NewRequest(http.MethodPost, "/tool_call", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleToolCall(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotQuery != "golang" {
		t.Errorf("expected searcher to receive query golang, got %q", gotQuery)
	}
	if gotLimit != defaultResultLimit {
		t.Errorf("expected limit %d, got %d", defaultResultLimit, gotLimit)
	}

	var resp toolCallResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Title != "Go" {
		t.Errorf("expected first result title Go, got %q", resp.Results[0].Title)
	}
}

func TestHandleToolCall_EmptyResults(t *testing.T) {
	srv := New(":0", searcherFunc(noResults))

	body := `{"name":"fetch_web_content","parameters":{"query":"nothing to find"}}`
	req := httptest.NewRequest(http.MethodPost, "/tool_call", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleToolCall(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	// An empty search still yields a results field, not an error.
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Errorf("expected body to contain empty results array, got %s", rec.Body.String())
	}
}

func TestHandleToolCall_NilResults(t *testing.T) {
	srv := New(":0", searcherFunc(func(ctx context.Context, query string, limit int) []search.Result {
		return nil
	}))

	body := `{"name":"fetch_web_content","parameters":{"query":"golang"}}`
	req := httptest.NewRequest(http.MethodPost, "/tool_call", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleToolCall(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Errorf("expected body to contain empty results array, got %s", rec.Body.String())
	}
}

func TestHandleToolCall_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "empty query",
			body:       `{"name":"fetch_web_content","parameters":{"query":""}}`,
			wantStatus: http.StatusOK,
			wantError:  "no query",
		},
		{
			name:       "missing parameters",
			body:       `{"name":"fetch_web_content"}`,
			wantStatus: http.StatusOK,
			wantError:  "no query",
		},
		{
			name:       "unknown tool",
			body:       `{"name":"frobnicate","parameters":{"query":"golang"}}`,
			wantStatus: http.StatusOK,
			wantError:  "unknown tool: frobnicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcherCalled := false
			srv := New(":0", searcherFunc(func(ctx context.Context, query string, limit int) []search.Result {
				searcherCalled = true
				return nil
			}))

			req := httptest.NewRequest(http.MethodPost, "/tool_call", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.handleToolCall(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, resp.Error)
			}
			if searcherCalled {
				t.Error("expected searcher not to be called")
			}
		})
	}
}

func TestHandleToolCall_WrongMethod(t *testing.T) {
	srv := New(":0", searcherFunc(noResults))

	req := httptest.NewRequest(http.MethodGet, "/tool_call", nil)
	rec := httptest.NewRecorder()
	srv.handleToolCall(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestServer_ServesOverHTTP(t *testing.T) {
	srv := startTestServer(t, searcherFunc(func(ctx context.Context, query string, limit int) []search.Result {
		return []search.Result{
			{Title: "Go", URL: "https://go.dev", Description: "The Go programming language"},
		}
	}))
	base := "http://" + srv.BoundAddr()

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected health status 200, got %d", resp.StatusCode)
	}

	toolResp, err := http.Post(base+"/tool_call", "application/json",
		strings.NewReader(`{"name":"fetch_web_content","parameters":{"query":"golang"}}`))
	if err != nil {
		t.Fatalf("tool call request failed: %v", err)
	}
	defer toolResp.Body.Close()
	if toolResp.StatusCode != http.StatusOK {
		t.Errorf("expected tool call status 200, got %d", toolResp.StatusCode)
	}
	var call toolCallResponse
	if err := json.NewDecoder(toolResp.Body).Decode(&call); err != nil {
		t.Fatalf("failed to decode tool call response: %v", err)
	}
	if len(call.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(call.Results))
	}

	metricsResp, err := http.Get(base + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer metricsResp.Body.Close()
	if metricsResp.StatusCode != http.StatusOK {
		t.Errorf("expected metrics status 200, got %d", metricsResp.StatusCode)
	}
	metrics, err := io.ReadAll(metricsResp.Body)
	if err != nil {
		t.Fatalf("failed to read metrics body: %v", err)
	}
	if !strings.Contains(string(metrics), "askweb_tool_calls_total") {
		t.Error("expected metrics to include askweb_tool_calls_total")
	}
	if !strings.Contains(string(metrics), "askweb_tool_call_duration_seconds") {
		t.Error("expected metrics to include askweb_tool_call_duration_seconds")
	}
}

func TestServer_ShutdownOnContextCancel(t *testing.T) {
	srv := New("127.0.0.1:0", searcherFunc(noResults))
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	deadline := time.After(3 * time.Second)
	for srv.BoundAddr() == "" {
		select {
		case <-deadline:
			t.Fatal("tool server did not start in time")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tool server did not shut down in time")
	}
}

func TestServer_ListenError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	defer listener.Close()

	srv := New(listener.Addr().String(), searcherFunc(noResults))
	if err := srv.Start(context.Background()); err == nil {
		t.Error("expected error when address is already in use")
	}
}

func TestStop_BeforeStart(t *testing.T) {
	srv := New(":0", searcherFunc(noResults))
	if err := srv.Stop(context.Background()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
