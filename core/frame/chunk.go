package frame

import (
	"encoding/json"

	"github.com/confluo-ai/confluo/chat"
)

/*
	STREAMING WIRE TYPES

	These types model the JSON payload of a data frame. Each chunk carries
	incremental deltas for content, reasoning, refusals, and tool calls, and
	optionally usage totals (servers send those in a trailing chunk with an
	empty choices list).
*/

// ChunkRecord is the decoded structured payload of a data frame.
type ChunkRecord struct {
	ID           string        `json:"id"`
	Object       string        `json:"object"` // "chat.completion.chunk"
	Created      int64         `json:"created"`
	CreatedAt    string        `json:"created_at,omitempty"` // Server-formatted creation timestamp
	Model        string        `json:"model"`
	ModelVersion string        `json:"model_version,omitempty"`
	Choices      []ChoiceDelta `json:"choices"`
	Usage        *chat.Usage   `json:"usage,omitempty"` // Present only in the trailing usage chunk
}

// ChoiceDelta is an incremental update to one choice's evolving message.
// All delta fields are optional; a chunk may carry only content, only tool
// calls, only a finish reason, etc.
type ChoiceDelta struct {
	Index        int          `json:"index"`
	Delta        MessageDelta `json:"delta"`
	FinishReason *string      `json:"finish_reason"` // Nullable; nil until the final chunk for this choice
}

// MessageDelta carries the incremental message fields of a choice delta.
type MessageDelta struct {
	Role             string          `json:"role,omitempty"`
	Content          *string         `json:"content,omitempty"`           // Nullable to distinguish empty string from absent
	ReasoningContent *string         `json:"reasoning_content,omitempty"` // Separate reasoning channel some models use instead of inline tags
	Refusal          *string         `json:"refusal,omitempty"`
	ToolCalls        []ToolCallDelta `json:"tool_calls,omitempty"`
}

// ToolCallDelta is an incremental tool call fragment. The first fragment for
// a given index carries the id and function name; subsequent fragments carry
// argument substrings to append in arrival order.
type ToolCallDelta struct {
	Index    int    `json:"index"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Function struct {
		Name      string `json:"name,omitempty"`
		Arguments string `json:"arguments,omitempty"`
	} `json:"function"`
}

// DecodeChunk parses a raw data payload into a ChunkRecord.
func DecodeChunk(payload string) (*ChunkRecord, error) {
	var chunk ChunkRecord
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return nil, err
	}
	return &chunk, nil
}
