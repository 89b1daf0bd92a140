package api

import (
	"encoding/json"
	"fmt"
)

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content block type tags
const (
	BlockTypeText    = "text"
	BlockTypeToolUse = "tool_use"
)

// ContentBlock is one typed block in a message's content array.
// The set is closed: TextBlock, ToolUseBlock, or UnknownBlock for
// block types this client does not understand.
type ContentBlock interface {
	blockType() string
}

// TextBlock is a plain text content block
type TextBlock struct {
	Text string `json:"text"`
}

func (TextBlock) blockType() string { return BlockTypeText }

// MarshalJSON emits the tagged wire form
func (b TextBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: BlockTypeText, Text: b.Text})
}

// ToolUseBlock is a tool invocation requested by the model
type ToolUseBlock struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Input ToolInput `json:"input"`
}

func (ToolUseBlock) blockType() string { return BlockTypeToolUse }

// MarshalJSON emits the tagged wire form
func (b ToolUseBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string    `json:"type"`
		ID    string    `json:"id"`
		Name  string    `json:"name"`
		Input ToolInput `json:"input"`
	}{Type: BlockTypeToolUse, ID: b.ID, Name: b.Name, Input: b.Input})
}

// ToolInput holds the arguments of a tool_use block.
// A missing query key decodes to the empty string.
type ToolInput struct {
	Query string `json:"query"`
}

// UnknownBlock preserves a block of an unrecognized type verbatim
type UnknownBlock struct {
	Type string
	Raw  json.RawMessage
}

func (b UnknownBlock) blockType() string { return b.Type }

// MarshalJSON re-emits the original bytes
func (b UnknownBlock) MarshalJSON() ([]byte, error) {
	if len(b.Raw) == 0 {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{Type: b.Type})
	}
	return b.Raw, nil
}

// ContentBlocks is a JSON array of tagged content blocks
type ContentBlocks []ContentBlock

// UnmarshalJSON decodes each block by its type tag
func (cb *ContentBlocks) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("failed to parse content blocks: %w", err)
	}

	blocks := make(ContentBlocks, 0, len(raws))
	for _, raw := range raws {
		block, err := decodeContentBlock(raw)
		if err != nil {
			return err
		}
		blocks = append(blocks, block)
	}
	*cb = blocks
	return nil
}

// decodeContentBlock parses one tagged block from its wire form
func decodeContentBlock(raw json.RawMessage) (ContentBlock, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("failed to parse content block: %w", err)
	}

	switch tag.Type {
	case BlockTypeText:
		var b TextBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("failed to parse text block: %w", err)
		}
		return b, nil
	case BlockTypeToolUse:
		var b ToolUseBlock
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("failed to parse tool_use block: %w", err)
		}
		return b, nil
	default:
		return UnknownBlock{Type: tag.Type, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

// MessageContent is the content of one conversation turn. It marshals
// as a bare JSON string when it holds plain text and as a block array
// when it holds typed blocks, matching the wire format where user turns
// are plain strings.
type MessageContent struct {
	Text   string
	Blocks ContentBlocks
}

// TextContent wraps plain text as message content
func TextContent(text string) MessageContent {
	return MessageContent{Text: text}
}

// BlockContent wraps typed blocks as message content
func BlockContent(blocks ...ContentBlock) MessageContent {
	return MessageContent{Blocks: blocks}
}

// MarshalJSON emits a string or a block array depending on the content
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.Blocks != nil {
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts both wire forms
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.Blocks = nil
		return nil
	}

	var blocks ContentBlocks
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("content is neither a string nor a block array: %w", err)
	}
	c.Text = ""
	c.Blocks = blocks
	return nil
}

// Message represents a single conversation turn
type Message struct {
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
}

// NewUserMessage builds a plain text user turn
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: TextContent(text)}
}

// NewAssistantMessage builds an assistant turn from typed blocks
func NewAssistantMessage(blocks ...ContentBlock) Message {
	return Message{Role: RoleAssistant, Content: BlockContent(blocks...)}
}

// MessagesRequest represents the Messages API request
type MessagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
	Tools     []Tool    `json:"tools,omitempty"`
}

// Usage represents token usage statistics
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessagesResponse represents the Messages API response
type MessagesResponse struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Role       string        `json:"role"`
	Model      string        `json:"model"`
	Content    ContentBlocks `json:"content"`
	StopReason string        `json:"stop_reason,omitempty"`
	Usage      Usage         `json:"usage"`
}

// HasToolUse checks if the response requests a tool invocation
func (r *MessagesResponse) HasToolUse() bool {
	return r.FirstToolUse() != nil
}

// FirstToolUse returns the first tool_use block, or nil when the
// response contains none. Later tool_use blocks are ignored.
func (r *MessagesResponse) FirstToolUse() *ToolUseBlock {
	for _, block := range r.Content {
		if tu, ok := block.(ToolUseBlock); ok {
			return &tu
		}
	}
	return nil
}

// FirstText returns the text of the first text block, or "" when the
// response contains none
func (r *MessagesResponse) FirstText() string {
	for _, block := range r.Content {
		if tb, ok := block.(TextBlock); ok {
			return tb.Text
		}
	}
	return ""
}

// LeadingText returns the head block's text when the response starts
// with a text block, otherwise the empty string
func (r *MessagesResponse) LeadingText() string {
	if len(r.Content) == 0 {
		return ""
	}
	if tb, ok := r.Content[0].(TextBlock); ok {
		return tb.Text
	}
	return ""
}

// GetUsageMap returns usage as a map for display
func (r *MessagesResponse) GetUsageMap() map[string]int {
	return map[string]int{
		"input_tokens":  r.Usage.InputTokens,
		"output_tokens": r.Usage.OutputTokens,
		"total_tokens":  r.Usage.InputTokens + r.Usage.OutputTokens,
	}
}
