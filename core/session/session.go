package session

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/confluo-ai/confluo/chat"
	"github.com/confluo-ai/confluo/core/dispatch"
	"github.com/confluo-ai/confluo/core/frame"
	"github.com/confluo-ai/confluo/core/thinktag"
	"github.com/confluo-ai/confluo/core/toolcall"
	"github.com/confluo-ai/confluo/internal/utils"
	"github.com/confluo-ai/confluo/providers/observability"
)

// Option configures a Session at creation time.
type Option func(*Session)

// WithThinkTags configures inline reasoning delimiters. reasoningTag is the
// tag name wrapping chain-of-thought (e.g. "think"); answerTag optionally
// names a distinct tag wrapping the final answer and may be empty, in which
// case all content outside the reasoning tag is answer content.
func WithThinkTags(reasoningTag, answerTag string) Option {
	return func(s *Session) {
		s.reasoningTag = reasoningTag
		s.answerTag = answerTag
	}
}

// WithToolParameters supplies the name -> has-parameters lookup used to
// normalize absent argument text for zero-parameter tools.
func WithToolParameters(lookup toolcall.HasParameters) Option {
	return func(s *Session) {
		s.hasParameters = lookup
	}
}

// WithFailFast makes the session stop pulling frames after the first error.
// Without it, malformed frames and upstream error events are surfaced via
// OnError and processing continues (soft-fail).
func WithFailFast() Option {
	return func(s *Session) {
		s.failFast = true
	}
}

// Session assembles one streaming response. It is not safe for concurrent
// use: frames must be delivered by a single goroutine, in order.
type Session struct {
	id         string
	parser     *frame.Parser
	dispatcher *dispatch.Dispatcher

	reasoningTag  string
	answerTag     string
	hasParameters toolcall.HasParameters
	failFast      bool

	// Response-level scalar fields, first-wins.
	responseID   string
	object       string
	model        string
	modelVersion string
	created      int64
	createdAt    string
	usage        *chat.Usage

	choices   map[int]*choiceState
	closeSeen bool
	failed    bool
	frames    int64

	final *chat.ChatResponse
}

// New creates a Session delivering events to the given handler. The handler
// gets a dedicated dispatcher; use NewWithDispatcher to share one handler
// across several concurrent sessions.
func New(handler dispatch.Handler, opts ...Option) *Session {
	return NewWithDispatcher(dispatch.NewDispatcher(handler), opts...)
}

// NewWithDispatcher creates a Session delivering events through an existing
// dispatcher. Sessions sharing a dispatcher (and therefore a handler) never
// run two callback invocations concurrently.
func NewWithDispatcher(dispatcher *dispatch.Dispatcher, opts ...Option) *Session {
	s := &Session{
		id:         uuid.NewString(),
		parser:     frame.NewParser(),
		dispatcher: dispatcher,
		choices:    map[int]*choiceState{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's unique identifier, used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Failed reports whether the session has surfaced an error.
func (s *Session) Failed() bool {
	return s.failed
}

// ProcessLine classifies and processes one raw line of the event stream,
// dispatching any resulting callback events. It returns a non-nil error only
// when processing must stop: always for protocol violations, and for other
// errors when the session runs fail-fast. Soft failures are surfaced via
// OnError and return nil.
func (s *Session) ProcessLine(ctx context.Context, line string) error {
	if s.final != nil {
		return nil
	}

	raw := s.parser.Parse(line)
	switch raw.Kind {
	case frame.KindIgnored:
		return nil

	case frame.KindControlClose:
		s.closeSeen = true
		return nil

	case frame.KindControlError:
		err := &UpstreamError{Detail: raw.Payload}
		s.failed = true
		s.dispatcher.Dispatch(dispatch.Event{Type: dispatch.EventError, Err: err})
		if s.failFast {
			return err
		}
		return nil
	}

	s.frames++
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Counter(observability.MetricStreamFramesTotal).Add(ctx, 1,
			observability.String(observability.AttrStreamSessionID, s.id),
		)
	}

	chunk, decodeErr := frame.DecodeChunk(raw.Payload)
	if decodeErr != nil {
		err := &MalformedFrameError{Payload: raw.Payload, Err: decodeErr}
		s.dispatcher.Dispatch(dispatch.Event{Type: dispatch.EventError, Err: err})
		if observer != nil {
			observer.Counter(observability.MetricStreamMalformedTotal).Add(ctx, 1,
				observability.String(observability.AttrStreamSessionID, s.id),
			)
			observer.Debug(ctx, "skipping malformed frame",
				observability.String(observability.AttrStreamSessionID, s.id),
				observability.String(observability.AttrStreamFramePayload,
					observability.TruncateStringDefault(raw.Payload)),
				observability.Error(err),
			)
		}
		if s.failFast {
			s.failed = true
			return err
		}
		return nil
	}

	events, err := s.processChunk(chunk)
	if len(events) > 0 {
		s.dispatcher.Dispatch(events...)
	}
	if err != nil {
		// Protocol violations are fatal regardless of fail-fast.
		s.failed = true
		s.dispatcher.Dispatch(dispatch.Event{Type: dispatch.EventError, Err: err})
		return err
	}
	return nil
}

// processChunk merges one decoded chunk into session state and produces the
// callback events it implies.
func (s *Session) processChunk(chunk *frame.ChunkRecord) ([]dispatch.Event, error) {
	s.mergeScalars(chunk)

	// A chunk with no choices is the protocol's trailing usage frame; the
	// usage merge above is all there is to do.
	if len(chunk.Choices) == 0 {
		return nil, nil
	}

	var events []dispatch.Event
	for i := range chunk.Choices {
		choiceEvents, err := s.processChoice(chunk, &chunk.Choices[i])
		events = append(events, choiceEvents...)
		if err != nil {
			return events, err
		}
	}
	return events, nil
}

func (s *Session) processChoice(chunk *frame.ChunkRecord, delta *frame.ChoiceDelta) ([]dispatch.Event, error) {
	state := s.choice(delta.Index)

	if state.role == "" && delta.Delta.Role != "" {
		state.role = delta.Delta.Role
	}
	if state.refusal == "" && delta.Delta.Refusal != nil && *delta.Delta.Refusal != "" {
		state.refusal = *delta.Delta.Refusal
	}
	if state.finishReason == "" && delta.FinishReason != nil && *delta.FinishReason != "" {
		state.finishReason = *delta.FinishReason
	}

	events, err := state.applyToolDeltas(delta.Delta.ToolCalls, s.responseID, s.hasParameters)
	if err != nil {
		return events, err
	}

	if delta.Delta.Content != nil && *delta.Delta.Content != "" {
		events = append(events, s.processContent(chunk, state, *delta.Delta.Content)...)
	}

	// Separate reasoning channel: some models stream chain-of-thought as a
	// dedicated field instead of inline tags.
	if delta.Delta.ReasoningContent != nil && *delta.Delta.ReasoningContent != "" {
		state.reasoning.WriteString(*delta.Delta.ReasoningContent)
		events = append(events, dispatch.Event{
			Type:  dispatch.EventPartialThinking,
			Text:  *delta.Delta.ReasoningContent,
			Chunk: chunk,
		})
	}

	// The tool_calls finish reason will not be followed by a higher index,
	// so the trailing accumulator is finalized immediately.
	if state.finishReason == chat.FinishReasonToolCalls {
		events = append(events, state.finalizePendingTool(s.responseID, s.hasParameters)...)
	}

	return events, nil
}

// processContent appends a content token and classifies it through the tag
// tracker when one is configured; otherwise the token is answer content as-is.
func (s *Session) processContent(chunk *frame.ChunkRecord, state *choiceState, token string) []dispatch.Event {
	state.rawContent.WriteString(token)

	if state.tracker == nil {
		state.answer.WriteString(token)
		return []dispatch.Event{{Type: dispatch.EventPartialResponse, Text: token, Chunk: chunk}}
	}

	var events []dispatch.Event
	for _, fragment := range state.tracker.Update(token) {
		switch fragment.Kind {
		case thinktag.FragmentThinking:
			state.reasoning.WriteString(fragment.Text)
			events = append(events, dispatch.Event{Type: dispatch.EventPartialThinking, Text: fragment.Text, Chunk: chunk})
		case thinktag.FragmentAnswer:
			state.answer.WriteString(fragment.Text)
			events = append(events, dispatch.Event{Type: dispatch.EventPartialResponse, Text: fragment.Text, Chunk: chunk})
		}
	}
	return events
}

// mergeScalars applies the first-non-null-wins merge of response-level
// fields. Once set from some chunk a field is never overwritten.
func (s *Session) mergeScalars(chunk *frame.ChunkRecord) {
	if s.responseID == "" {
		s.responseID = chunk.ID
	}
	if s.object == "" {
		s.object = chunk.Object
	}
	if s.model == "" {
		s.model = chunk.Model
	}
	if s.modelVersion == "" {
		s.modelVersion = chunk.ModelVersion
	}
	if s.created == 0 {
		s.created = chunk.Created
	}
	if s.createdAt == "" {
		s.createdAt = chunk.CreatedAt
	}
	// Copied so later mutation of the chunk cannot alias into session state.
	if s.usage == nil && chunk.Usage != nil {
		s.usage = utils.Ptr(*chunk.Usage)
	}
}

// choice returns the state for a choice index, creating it on first
// appearance. Indices may arrive out of order for multi-choice responses.
func (s *Session) choice(index int) *choiceState {
	if state, ok := s.choices[index]; ok {
		return state
	}
	state := &choiceState{index: index}
	if s.reasoningTag != "" {
		state.tracker = thinktag.New(s.reasoningTag, s.answerTag)
	}
	s.choices[index] = state
	return state
}

// choiceIndexes returns every choice index seen, ascending.
func (s *Session) choiceIndexes() []int {
	indexes := make([]int, 0, len(s.choices))
	for index := range s.choices {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	return indexes
}
