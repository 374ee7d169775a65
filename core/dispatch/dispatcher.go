package dispatch

import "sync"

// Dispatcher delivers events to a handler, holding a lock for the duration
// of each individual callback invocation. Sessions that share one handler
// must share the Dispatcher wrapping it; each then sees its own events in
// order, and no two callbacks ever run concurrently.
type Dispatcher struct {
	mu      sync.Mutex
	handler Handler
}

// NewDispatcher wraps a handler for serialized delivery.
func NewDispatcher(handler Handler) *Dispatcher {
	return &Dispatcher{handler: handler}
}

// Dispatch delivers events in order. The lock is taken per invocation, not
// for the whole batch, so concurrent sessions interleave at event granularity
// while each single callback runs exclusively.
func (d *Dispatcher) Dispatch(events ...Event) {
	for _, event := range events {
		d.dispatchOne(event)
	}
}

func (d *Dispatcher) dispatchOne(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch event.Type {
	case EventPartialResponse:
		d.handler.OnPartialResponse(event.Text, event.Chunk)
	case EventPartialThinking:
		d.handler.OnPartialThinking(event.Text, event.Chunk)
	case EventPartialToolCall:
		if event.ToolCall != nil {
			d.handler.OnPartialToolCall(*event.ToolCall)
		}
	case EventCompleteToolCall:
		if event.Completed != nil {
			d.handler.OnCompleteToolCall(*event.Completed)
		}
	case EventCompleteResponse:
		d.handler.OnCompleteResponse(event.Response)
	case EventError:
		d.handler.OnError(event.Err)
	}
}
