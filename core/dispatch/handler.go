package dispatch

import (
	"github.com/confluo-ai/confluo/chat"
	"github.com/confluo-ai/confluo/core/frame"
	"github.com/confluo-ai/confluo/core/toolcall"
)

// Handler receives streaming callback events. Implementations do not need to
// be thread-safe: a Dispatcher serializes invocations, including across
// sessions sharing the same handler instance.
type Handler interface {
	// OnPartialResponse receives an answer-content token and the chunk it
	// arrived in.
	OnPartialResponse(text string, chunk *frame.ChunkRecord)

	// OnPartialThinking receives a reasoning-content token and the chunk it
	// arrived in.
	OnPartialThinking(text string, chunk *frame.ChunkRecord)

	// OnPartialToolCall receives an incremental tool call fragment.
	OnPartialToolCall(partial PartialToolCall)

	// OnCompleteToolCall receives a finalized tool invocation.
	OnCompleteToolCall(completed toolcall.Completed)

	// OnCompleteResponse receives the final assembled response, once,
	// after the stream's terminal signal.
	OnCompleteResponse(response *chat.ChatResponse)

	// OnError receives processing and upstream errors. Whether the session
	// keeps pulling frames afterwards is controlled by its fail-fast flag.
	OnError(err error)
}

// HandlerFuncs adapts plain functions to the Handler interface so callers
// can implement only the callbacks they care about. Nil fields are no-ops.
type HandlerFuncs struct {
	PartialResponse  func(text string, chunk *frame.ChunkRecord)
	PartialThinking  func(text string, chunk *frame.ChunkRecord)
	PartialToolCall  func(partial PartialToolCall)
	CompleteToolCall func(completed toolcall.Completed)
	CompleteResponse func(response *chat.ChatResponse)
	Error            func(err error)
}

var _ Handler = HandlerFuncs{}

func (h HandlerFuncs) OnPartialResponse(text string, chunk *frame.ChunkRecord) {
	if h.PartialResponse != nil {
		h.PartialResponse(text, chunk)
	}
}

func (h HandlerFuncs) OnPartialThinking(text string, chunk *frame.ChunkRecord) {
	if h.PartialThinking != nil {
		h.PartialThinking(text, chunk)
	}
}

func (h HandlerFuncs) OnPartialToolCall(partial PartialToolCall) {
	if h.PartialToolCall != nil {
		h.PartialToolCall(partial)
	}
}

func (h HandlerFuncs) OnCompleteToolCall(completed toolcall.Completed) {
	if h.CompleteToolCall != nil {
		h.CompleteToolCall(completed)
	}
}

func (h HandlerFuncs) OnCompleteResponse(response *chat.ChatResponse) {
	if h.CompleteResponse != nil {
		h.CompleteResponse(response)
	}
}

func (h HandlerFuncs) OnError(err error) {
	if h.Error != nil {
		h.Error(err)
	}
}
