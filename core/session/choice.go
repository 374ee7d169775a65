package session

import (
	"fmt"
	"strings"

	"github.com/confluo-ai/confluo/core/dispatch"
	"github.com/confluo-ai/confluo/core/frame"
	"github.com/confluo-ai/confluo/core/thinktag"
	"github.com/confluo-ai/confluo/core/toolcall"
)

// choiceState holds the per-choice assembly buffers. Choice indices are dense
// starting at zero but may first appear in any order across chunks, so states
// are created lazily on first appearance.
type choiceState struct {
	index int

	role         string
	refusal      string
	finishReason string

	// rawContent accumulates every content token verbatim, delimiters
	// included; the classified buffers below feed the final message.
	rawContent strings.Builder
	answer     strings.Builder
	reasoning  strings.Builder

	tracker *thinktag.Tracker

	// accumulators is dense by tool index; sawToolCalls doubles as the
	// authoritative "this turn ends in a tool call" signal because servers
	// do not reliably report the tool_calls finish reason.
	accumulators []*toolcall.Accumulator
	sawToolCalls bool
}

// applyToolDeltas runs the index-monotonicity protocol over a chunk's tool
// call fragments: a new, higher index finalizes every accumulator before it
// (that is how the wire signals "the previous tool's arguments are done"),
// while a repeated index keeps appending.
func (c *choiceState) applyToolDeltas(deltas []frame.ToolCallDelta, responseID string, hasParameters toolcall.HasParameters) ([]dispatch.Event, error) {
	var events []dispatch.Event

	for _, delta := range deltas {
		c.sawToolCalls = true

		if delta.Index < 0 || delta.Index < len(c.accumulators)-1 {
			return events, &ProtocolViolationError{
				Reason: fmt.Sprintf("tool index went backwards: got %d after %d", delta.Index, len(c.accumulators)-1),
			}
		}

		// Index advanced: everything before it is complete. Skipped indices
		// get placeholder slots so index math stays dense; a placeholder
		// that never saw a delta is not a call and completes nothing.
		for delta.Index >= len(c.accumulators) {
			if n := len(c.accumulators); n > 0 && c.accumulators[n-1].Observed() && !c.accumulators[n-1].Finalized() {
				completed := c.accumulators[n-1].Build(responseID, hasParameters)
				events = append(events, dispatch.Event{Type: dispatch.EventCompleteToolCall, Completed: &completed})
			}
			c.accumulators = append(c.accumulators, toolcall.NewAccumulator(len(c.accumulators)))
		}

		accumulator := c.accumulators[delta.Index]
		if accumulator.Finalized() {
			// Once finalized an accumulator is never mutated again.
			continue
		}
		accumulator.Append(delta.ID, delta.Function.Name, delta.Function.Arguments)

		events = append(events, dispatch.Event{
			Type: dispatch.EventPartialToolCall,
			ToolCall: &dispatch.PartialToolCall{
				ChoiceIndex: c.index,
				Index:       delta.Index,
				ID:          delta.ID,
				Name:        accumulator.Name(),
				Arguments:   delta.Function.Arguments,
			},
		})
	}

	return events, nil
}

// finalizePendingTool finalizes the trailing accumulator if it has not been
// finalized via index advancement. The last tool in the list has no "next
// index" to trigger it, so this runs on the tool_calls finish reason and on
// stream completion.
func (c *choiceState) finalizePendingTool(responseID string, hasParameters toolcall.HasParameters) []dispatch.Event {
	n := len(c.accumulators)
	if n == 0 || !c.accumulators[n-1].Observed() || c.accumulators[n-1].Finalized() {
		return nil
	}
	completed := c.accumulators[n-1].Build(responseID, hasParameters)
	return []dispatch.Event{{Type: dispatch.EventCompleteToolCall, Completed: &completed}}
}
