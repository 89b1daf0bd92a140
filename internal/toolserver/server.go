// Package toolserver implements the HTTP tool service that backs the
// assistant's tool calls. It exposes a liveness probe, the tool call
// endpoint, and Prometheus metrics.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quocvuong92/askweb/internal/constants"
	"github.com/quocvuong92/askweb/internal/logging"
	"github.com/quocvuong92/askweb/internal/search"
	"github.com/quocvuong92/askweb/internal/tool"
)

// ServiceName identifies this service in health responses.
const ServiceName = "askweb-tool-server"

// defaultResultLimit caps how many results a single tool call returns.
const defaultResultLimit = 3

// Searcher is the search backend the tool service fronts.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) []search.Result
}

// Server serves tool calls over HTTP.
type Server struct {
	addr      string
	searcher  Searcher
	httpSrv   *http.Server
	boundAddr string
}

// New creates a tool server that will listen on addr.
func New(addr string, searcher Searcher) *Server {
	return &Server{
		addr:     addr,
		searcher: searcher,
	}
}

// healthResponse is the liveness probe body.
type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// toolCallResponse is the success shape. Results is always present,
// even when the search found nothing.
type toolCallResponse struct {
	Results []search.Result `json:"results"`
}

// errorResponse is the error shape for both client and tool errors.
type errorResponse struct {
	Error string `json:"error"`
}

// Start binds the listener and serves until ctx is cancelled or the
// server fails. It blocks for the lifetime of the server.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/tool_call", s.handleToolCall)
	mux.Handle("/metrics", promhttp.Handler())

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("tool server listen on %s: %w", s.addr, err)
	}
	s.boundAddr = listener.Addr().String()

	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		<-ctx.Done()
		if err := s.Stop(context.Background()); err != nil {
			logging.Warn("tool server shutdown failed", logging.Fields{"error": err.Error()})
		}
	}()

	logging.Info("tool server listening", logging.Fields{"addr": s.boundAddr})

	if err := s.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("tool server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully, waiting up to the shutdown
// timeout for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// BoundAddr reports the address the listener is bound to. It is empty
// until Start has bound the listener, and reflects the resolved port
// when addr requested port 0.
func (s *Server) BoundAddr() string {
	return s.boundAddr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   ServiceName,
		Version:   constants.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := r.Header.Get("X-Request-ID")

	var inv tool.Invocation
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		recordToolCall(outcomeBadRequest, start, 0)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if inv.Name != tool.FetchWebContentName {
		recordToolCall(outcomeUnknownTool, start, 0)
		logging.Warn("unknown tool requested", logging.Fields{
			"tool":       inv.Name,
			"request_id": requestID,
		})
		writeJSON(w, http.StatusOK, errorResponse{Error: fmt.Sprintf("unknown tool: %s", inv.Name)})
		return
	}

	if inv.Parameters.Query == "" {
		recordToolCall(outcomeNoQuery, start, 0)
		writeJSON(w, http.StatusOK, errorResponse{Error: "no query"})
		return
	}

	results := s.searcher.Search(r.Context(), inv.Parameters.Query, defaultResultLimit)
	if results == nil {
		results = []search.Result{}
	}

	recordToolCall(outcomeSuccess, start, len(results))
	logging.Info("tool call served", logging.Fields{
		"tool":       inv.Name,
		"request_id": requestID,
		"results":    len(results),
	})
	writeJSON(w, http.StatusOK, toolCallResponse{Results: results})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("failed to encode response", err)
	}
}
