package session

import (
	"context"
	"strings"

	"github.com/confluo-ai/confluo/chat"
	"github.com/confluo-ai/confluo/core/dispatch"
	"github.com/confluo-ai/confluo/core/thinktag"
	"github.com/confluo-ai/confluo/providers/observability"
)

// Finish builds the final response after the stream's terminal signal. It
// flushes tracker residue, finalizes any accumulator that never saw a "next
// index", dispatches the remaining events plus the CompleteResponse event,
// and returns the assembled value. Calling Finish again returns the same
// response without re-dispatching.
//
// A stream that ended without a usable finish reason produces a response
// whose finish reason is simply absent, with whatever partial content was
// accumulated: a deliberate best-effort terminal state, not an error.
func (s *Session) Finish(ctx context.Context) (*chat.ChatResponse, error) {
	if s.final != nil {
		return s.final, nil
	}

	var events []dispatch.Event
	response := &chat.ChatResponse{
		ID:           s.responseID,
		Object:       s.object,
		Model:        s.model,
		ModelVersion: s.modelVersion,
		Created:      s.created,
		CreatedAt:    s.createdAt,
		Usage:        s.usage,
	}

	for _, index := range s.choiceIndexes() {
		state := s.choices[index]
		events = append(events, s.flushTracker(state)...)
		events = append(events, state.finalizePendingTool(s.responseID, s.hasParameters)...)
		response.Choices = append(response.Choices, s.buildChoice(state))
	}

	events = append(events, dispatch.Event{Type: dispatch.EventCompleteResponse, Response: response})
	s.dispatcher.Dispatch(events...)
	s.final = response

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Debug(ctx, "stream session finished",
			observability.String(observability.AttrStreamSessionID, s.id),
			observability.String(observability.AttrLLMResponseID, response.ID),
			observability.String(observability.AttrLLMModel, response.Model),
			observability.Int(observability.AttrStreamChoices, len(response.Choices)),
			observability.Int64(observability.AttrStreamFrames, s.frames),
		)
	}

	return response, nil
}

// flushTracker drains a choice's tag tracker residue into the buffers,
// producing the matching partial events so streaming consumers see the tail.
func (s *Session) flushTracker(state *choiceState) []dispatch.Event {
	if state.tracker == nil {
		return nil
	}
	var events []dispatch.Event
	for _, fragment := range state.tracker.Flush() {
		switch fragment.Kind {
		case thinktag.FragmentThinking:
			state.reasoning.WriteString(fragment.Text)
			events = append(events, dispatch.Event{Type: dispatch.EventPartialThinking, Text: fragment.Text})
		case thinktag.FragmentAnswer:
			state.answer.WriteString(fragment.Text)
			events = append(events, dispatch.Event{Type: dispatch.EventPartialResponse, Text: fragment.Text})
		}
	}
	return events
}

// buildChoice assembles the final message for one choice: buffers trimmed,
// empty becomes absent, and the accumulated tool calls attached in index
// order. The mere presence of tool calls overrides the reported finish
// reason because servers do not reliably report tool_calls.
func (s *Session) buildChoice(state *choiceState) chat.Choice {
	message := chat.Message{
		Role:      state.role,
		Content:   strings.TrimSpace(state.answer.String()),
		Reasoning: strings.TrimSpace(state.reasoning.String()),
		Refusal:   state.refusal,
	}
	if message.Role == "" {
		message.Role = chat.RoleAssistant
	}

	for _, accumulator := range state.accumulators {
		if !accumulator.Observed() {
			continue
		}
		completed := accumulator.Build(s.responseID, s.hasParameters)
		message.ToolCalls = append(message.ToolCalls, chat.ToolCall{
			ID:   completed.ID,
			Type: "function",
			Function: chat.ToolCallFunction{
				Name:      completed.Name,
				Arguments: completed.Arguments,
			},
		})
	}

	finishReason := state.finishReason
	if state.sawToolCalls {
		finishReason = chat.FinishReasonToolCalls
	}

	return chat.Choice{
		Index:        state.index,
		FinishReason: finishReason,
		Message:      message,
	}
}
