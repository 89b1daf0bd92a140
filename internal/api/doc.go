// Package api provides the conversation client for the Claude Messages API.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Conversation Client
//
//   - client.go: AIClient interface and factory function (NewClient)
//   - anthropic.go: Claude Messages API client implementation
//   - message.go: conversation turns and typed content blocks
//   - tools.go: tool definitions offered to the model
//
// ## Retry and Error Handling
//
//   - retry.go: Exponential backoff retry logic for transient API failures
//
// # Content Blocks
//
// Model responses arrive as arrays of tagged content blocks. The package
// decodes them once at the response boundary into a closed set of typed
// values (TextBlock, ToolUseBlock, UnknownBlock), so callers never inspect
// untyped maps. Helpers on MessagesResponse (FirstText, FirstToolUse,
// LeadingText) cover the common access patterns.
//
// # Usage
//
//	cfg := config.NewConfig()
//	cfg.Validate()
//	client, err := api.NewClient(cfg)
//	if err != nil {
//	    // handle error
//	}
//	defer client.Close()
//
//	resp, err := client.SendMessage(ctx, nil, "What is Go?", api.GetDefaultTools())
//
// # Interface Design
//
// The AIClient interface supports dependency injection for easier testing.
// The concrete implementation can be mocked using the interface type.
package api
