package toolserver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tool call outcomes recorded in metrics.
const (
	outcomeSuccess     = "success"
	outcomeNoQuery     = "no_query"
	outcomeUnknownTool = "unknown_tool"
	outcomeBadRequest  = "bad_request"
)

var (
	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "askweb_tool_calls_total",
		Help: "Total number of tool calls handled, labeled by outcome.",
	}, []string{"outcome"})

	toolCallDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "askweb_tool_call_duration_seconds",
		Help:    "Time spent handling a tool call, including the search.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	resultsReturned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "askweb_tool_results_returned_total",
		Help: "Total number of search results returned to callers.",
	})
)

// recordToolCall records one handled tool call.
func recordToolCall(outcome string, start time.Time, resultCount int) {
	toolCallsTotal.WithLabelValues(outcome).Inc()
	toolCallDuration.Observe(time.Since(start).Seconds())
	resultsReturned.Add(float64(resultCount))
}
