package dispatch

import (
	"github.com/confluo-ai/confluo/chat"
	"github.com/confluo-ai/confluo/core/frame"
	"github.com/confluo-ai/confluo/core/toolcall"
)

// EventType identifies the kind of payload carried by an Event.
type EventType string

const (
	// EventPartialResponse carries an answer-content token.
	EventPartialResponse EventType = "partial_response"
	// EventPartialThinking carries a reasoning-content token.
	EventPartialThinking EventType = "partial_thinking"
	// EventPartialToolCall carries an incremental tool call fragment.
	EventPartialToolCall EventType = "partial_tool_call"
	// EventCompleteToolCall carries a finalized tool invocation.
	EventCompleteToolCall EventType = "complete_tool_call"
	// EventCompleteResponse carries the final assembled response.
	EventCompleteResponse EventType = "complete_response"
	// EventError carries a processing or upstream error.
	EventError EventType = "error"
)

// PartialToolCall is the in-progress view of a tool invocation surfaced while
// fragments are still arriving.
type PartialToolCall struct {
	ChoiceIndex int    `json:"choice_index"`
	Index       int    `json:"index"`               // Position in the choice's tool list
	ID          string `json:"id,omitempty"`        // Call id seen so far (may still be empty)
	Name        string `json:"name,omitempty"`      // Function name seen so far
	Arguments   string `json:"arguments,omitempty"` // This chunk's argument fragment
}

// Event is a single callback event. Each event carries exactly one type of
// payload, identified by the Type field.
type Event struct {
	Type EventType

	Text      string              // Token text (EventPartialResponse / EventPartialThinking)
	Chunk     *frame.ChunkRecord  // Chunk the token arrived in (partial content events)
	ToolCall  *PartialToolCall    // EventPartialToolCall
	Completed *toolcall.Completed // EventCompleteToolCall
	Response  *chat.ChatResponse  // EventCompleteResponse
	Err       error               // EventError
}
