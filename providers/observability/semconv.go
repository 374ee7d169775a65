package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Response Attributes ---

const (
	// AttrLLMModel is the model identifier (e.g., "gpt-4", "claude-3")
	AttrLLMModel = "llm.model"

	// AttrLLMResponseID is the unique response identifier from the provider
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"
)

// --- Token Usage Attributes ---

const (
	// AttrLLMTokensPrompt is the number of prompt tokens
	AttrLLMTokensPrompt = "llm.tokens.prompt" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMTokensCompletion is the number of completion tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- Stream Assembly Attributes ---

const (
	// AttrStreamSessionID is the local identifier of an assembly session
	AttrStreamSessionID = "stream.session.id"

	// AttrStreamFrames is the number of data frames processed by a session
	AttrStreamFrames = "stream.frames"

	// AttrStreamChoices is the number of choices assembled by a session
	AttrStreamChoices = "stream.choices"

	// AttrStreamChoiceIndex is the index of the choice a record refers to
	AttrStreamChoiceIndex = "stream.choice.index"

	// AttrStreamFramePayload is the raw payload of a frame (serialized, truncated)
	AttrStreamFramePayload = "stream.frame.payload"
)

// --- Tool Call Attributes ---

const (
	// AttrToolCallID is the identifier of an assembled tool call
	AttrToolCallID = "tool_call.id"

	// AttrToolCallName is the function name of an assembled tool call
	AttrToolCallName = "tool_call.name"

	// AttrToolCallIndex is the slot index of a tool call within its choice
	AttrToolCallIndex = "tool_call.index"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrErrorType is the error type/class
	AttrErrorType = "error.type"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanStreamSession is the span name for a full stream assembly session
	SpanStreamSession = "stream.session"
)

// --- Event Names ---

const (
	// EventStreamFrameSkipped marks a malformed frame that was skipped
	EventStreamFrameSkipped = "stream.frame.skipped"

	// EventStreamUpstreamError marks an error frame received from upstream
	EventStreamUpstreamError = "stream.upstream_error"

	// EventStreamFinished marks the completion of a stream session
	EventStreamFinished = "stream.finished"
)

// --- Metric Names ---

const (
	// MetricStreamFramesTotal is the counter for processed data frames
	MetricStreamFramesTotal = "confluo.stream.frames.total"

	// MetricStreamMalformedTotal is the counter for skipped malformed frames
	MetricStreamMalformedTotal = "confluo.stream.malformed.total"

	// MetricStreamSessionDuration is the histogram for session duration
	MetricStreamSessionDuration = "confluo.stream.session.duration"
)
