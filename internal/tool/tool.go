// Package tool dispatches tool invocations requested by the model to
// the tool service over HTTP.
package tool

import "github.com/quocvuong92/askweb/internal/search"

// FetchWebContentName is the tool the tool service knows how to run.
const FetchWebContentName = "fetch_web_content"

// Invocation is a single tool call requested by the model
type Invocation struct {
	Name       string     `json:"name"`
	Parameters Parameters `json:"parameters"`
}

// Parameters holds the tool call arguments
type Parameters struct {
	Query string `json:"query"`
}

// Result is the tool service's answer to an invocation. Exactly one of
// Results or Error is meaningful; an error-shaped result is an expected
// outcome, not a Go error.
type Result struct {
	Results []search.Result `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// IsError checks whether the result carries a service-level error
func (r Result) IsError() bool {
	return r.Error != ""
}

// FirstDescription returns the description of the first result, or the
// empty string when the result is error-shaped or empty
func (r Result) FirstDescription() string {
	if r.Error != "" || len(r.Results) == 0 {
		return ""
	}
	return r.Results[0].Description
}
