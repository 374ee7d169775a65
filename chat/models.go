package chat

/*
	##### RESPONSE ENVELOPE #####
*/

// ChatResponse is the fully assembled response for one streaming session.
// Scalar fields follow first-wins merge semantics: once set from some chunk
// they are never overwritten by a later chunk.
type ChatResponse struct {
	ID           string   `json:"id"`
	Object       string   `json:"object"`                  // "chat.completion.chunk" object-type tag carried through
	Model        string   `json:"model"`                   // Model name or identifier
	ModelVersion string   `json:"model_version,omitempty"` // Model version, when the server reports one
	Created      int64    `json:"created"`                 // Creation timestamp (unix seconds)
	CreatedAt    string   `json:"created_at,omitempty"`    // Creation timestamp, server-formatted string
	Choices      []Choice `json:"choices"`
	Usage        *Usage   `json:"usage,omitempty"`
}

// Choice returns the choice with the given index, or nil if absent.
// Choice indices are dense starting at zero, so for the common single-choice
// response Choice(0) returns the only message.
func (r *ChatResponse) Choice(index int) *Choice {
	for i := range r.Choices {
		if r.Choices[i].Index == index {
			return &r.Choices[i]
		}
	}
	return nil
}

// Choice is one completed alternative within a response (n >= 1).
type Choice struct {
	Index        int     `json:"index"`
	FinishReason string  `json:"finish_reason,omitempty"` // Empty when the stream ended without a usable finish reason
	Message      Message `json:"message"`
}

// Message is the assembled assistant message for one choice.
type Message struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`

	// Tool calling fields
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Extended fields
	Refusal   string `json:"refusal,omitempty"`   // If model refuses to respond (safety/policy)
	Reasoning string `json:"reasoning,omitempty"` // Chain-of-thought reasoning, segregated from the answer
}

// HasToolCalls reports whether the message carries at least one tool call.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// Usage carries token usage totals, typically delivered in a trailing
// usage-only chunk.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`

	// Extended token metrics
	ReasoningTokens int `json:"reasoning_tokens,omitempty"` // Tokens spent on reasoning content
	CachedTokens    int `json:"cached_tokens,omitempty"`    // Cached prompt tokens
}

/*
	##### TOOL CALLS #####
*/

// ToolCall represents a function/tool call request issued by the model.
type ToolCall struct {
	ID       string           `json:"id,omitempty"` // Unique identifier for this tool call
	Type     string           `json:"type"`         // "function"
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string, always syntactically present (empty object for zero-parameter tools)
}

/*
	##### ENUMS #####
*/

// Finish reasons reported by OpenAI-compatible servers.
const (
	FinishReasonStop      = "stop"
	FinishReasonLength    = "length"
	FinishReasonToolCalls = "tool_calls"
)

// RoleAssistant is the message role carried by streamed responses.
const RoleAssistant = "assistant"
