package frame

import "testing"

func TestDecodeChunk_ContentDelta(t *testing.T) {
	payload := `{
		"id": "chatcmpl-123",
		"object": "chat.completion.chunk",
		"created": 1700000000,
		"model": "gpt-4",
		"choices": [{"index": 0, "delta": {"role": "assistant", "content": "Hello"}, "finish_reason": null}]
	}`

	chunk, err := DecodeChunk(payload)
	if err != nil {
		t.Fatalf("DecodeChunk() error = %v", err)
	}

	if chunk.ID != "chatcmpl-123" {
		t.Errorf("ID = %q", chunk.ID)
	}
	if len(chunk.Choices) != 1 {
		t.Fatalf("expected 1 choice, got %d", len(chunk.Choices))
	}

	choice := chunk.Choices[0]
	if choice.Delta.Content == nil || *choice.Delta.Content != "Hello" {
		t.Errorf("Content = %v, want Hello", choice.Delta.Content)
	}
	if choice.FinishReason != nil {
		t.Errorf("FinishReason = %v, want nil", *choice.FinishReason)
	}
}

func TestDecodeChunk_ToolCallDelta(t *testing.T) {
	payload := `{
		"id": "chatcmpl-123",
		"choices": [{"index": 0, "delta": {"tool_calls": [
			{"index": 0, "id": "call_abc", "type": "function", "function": {"name": "get_weather", "arguments": "{\"loc"}}
		]}}]
	}`

	chunk, err := DecodeChunk(payload)
	if err != nil {
		t.Fatalf("DecodeChunk() error = %v", err)
	}

	calls := chunk.Choices[0].Delta.ToolCalls
	if len(calls) != 1 {
		t.Fatalf("expected 1 tool call delta, got %d", len(calls))
	}
	if calls[0].ID != "call_abc" || calls[0].Function.Name != "get_weather" {
		t.Errorf("tool call = %+v", calls[0])
	}
	if calls[0].Function.Arguments != `{"loc` {
		t.Errorf("Arguments fragment = %q", calls[0].Function.Arguments)
	}
}

func TestDecodeChunk_TrailingUsage(t *testing.T) {
	payload := `{
		"id": "chatcmpl-123",
		"choices": [],
		"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
	}`

	chunk, err := DecodeChunk(payload)
	if err != nil {
		t.Fatalf("DecodeChunk() error = %v", err)
	}
	if len(chunk.Choices) != 0 {
		t.Errorf("expected empty choices, got %d", len(chunk.Choices))
	}
	if chunk.Usage == nil || chunk.Usage.TotalTokens != 30 {
		t.Errorf("Usage = %+v, want total 30", chunk.Usage)
	}
}

func TestDecodeChunk_EmptyContentIsNotNil(t *testing.T) {
	payload := `{"choices": [{"index": 0, "delta": {"content": ""}}]}`

	chunk, err := DecodeChunk(payload)
	if err != nil {
		t.Fatalf("DecodeChunk() error = %v", err)
	}

	// Empty string and absent field are distinct on the wire.
	if chunk.Choices[0].Delta.Content == nil {
		t.Error("empty content should decode as non-nil pointer")
	}
}

func TestDecodeChunk_Malformed(t *testing.T) {
	for _, payload := range []string{"", "{", "not json", `[1,2]`} {
		if _, err := DecodeChunk(payload); err == nil {
			t.Errorf("DecodeChunk(%q) should fail", payload)
		}
	}
}
