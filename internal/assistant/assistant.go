// Package assistant orchestrates a query against the model and the
// tool service: one model call, at most one tool round trip, then a
// forced summary.
package assistant

import (
	"context"

	"github.com/quocvuong92/askweb/internal/api"
	"github.com/quocvuong92/askweb/internal/logging"
	"github.com/quocvuong92/askweb/internal/tool"
)

// noAnswerText is returned when a model response has no text block.
const noAnswerText = "No clear answer found"

// summaryInstruction closes the conversation after a tool round trip.
const summaryInstruction = "Please summarize the information from the tool call and don't send any more tool calls"

// toolResultPreamble joins the model's leading text with the tool
// result in the synthetic assistant turn.
const toolResultPreamble = "\n\nThe tool call was successful and here is the information from the tool call: "

// Dispatcher sends tool invocations to the tool service.
type Dispatcher interface {
	Healthy(ctx context.Context) bool
	Dispatch(ctx context.Context, inv tool.Invocation) (tool.Result, error)
}

// Assistant answers user queries. It holds no per-query state, so a
// single Assistant serves any number of sequential queries.
type Assistant struct {
	client     api.AIClient
	dispatcher Dispatcher
}

// New creates an assistant backed by the given model client and tool
// dispatcher.
func New(client api.AIClient, dispatcher Dispatcher) *Assistant {
	return &Assistant{
		client:     client,
		dispatcher: dispatcher,
	}
}

// ToolServiceAvailable probes the tool service. The result is
// informational; Ask works either way.
func (a *Assistant) ToolServiceAvailable(ctx context.Context) bool {
	return a.dispatcher.Healthy(ctx)
}

// Ask sends query to the model with the web lookup tool declared. When
// the model requests the tool, the invocation is dispatched, its first
// result is folded into the conversation as an assistant turn, and the
// model is asked for a summary with no tools declared, so it cannot
// request another round trip. The returned string is the final answer
// text.
//
// Tool service failures degrade to an empty tool result and the
// conversation continues; only model transport or decode failures and
// context cancellation surface as errors.
func (a *Assistant) Ask(ctx context.Context, query string) (string, error) {
	resp, err := a.client.SendMessage(ctx, nil, query, api.GetDefaultTools())
	if err != nil {
		return "", err
	}

	toolUse := resp.FirstToolUse()
	if toolUse == nil {
		return answerText(resp), nil
	}

	logging.Debug("tool call requested", logging.Fields{
		"tool":  toolUse.Name,
		"query": toolUse.Input.Query,
	})

	result, err := a.dispatcher.Dispatch(ctx, tool.Invocation{
		Name:       toolUse.Name,
		Parameters: tool.Parameters{Query: toolUse.Input.Query},
	})
	if err != nil {
		return "", err
	}
	if result.IsError() {
		logging.Warn("tool call failed", logging.Fields{"error": result.Error})
	}

	history := []api.Message{
		api.NewUserMessage(query),
		api.NewAssistantMessage(api.TextBlock{
			Text: resp.LeadingText() + toolResultPreamble + result.FirstDescription(),
		}),
	}

	summary, err := a.client.SendMessage(ctx, history, summaryInstruction, nil)
	if err != nil {
		return "", err
	}
	return answerText(summary), nil
}

// answerText extracts the first text block verbatim, or the no-answer
// sentinel when the response has no text block at all.
func answerText(resp *api.MessagesResponse) string {
	for _, block := range resp.Content {
		if tb, ok := block.(api.TextBlock); ok {
			return tb.Text
		}
	}
	return noAnswerText
}
