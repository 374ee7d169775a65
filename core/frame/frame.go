package frame

import "strings"

// Reserved line prefixes of the wire protocol.
const (
	dataPrefix       = "data:"
	errorEventMarker = "event: error"
	closeEventMarker = "event: close"
	doneSentinel     = "[DONE]"
)

// Kind discriminates the frame types produced by the Parser.
type Kind int

const (
	// KindIgnored marks lines that carry no payload for the engine: blanks,
	// comments, control markers, and unknown fields.
	KindIgnored Kind = iota
	// KindData marks a normal data frame; Payload holds the raw JSON chunk.
	KindData
	// KindControlError marks the data line following an "event: error"
	// marker; Payload holds the server's error detail verbatim.
	KindControlError
	// KindControlClose marks the "event: close" control marker.
	KindControlClose
)

// RawFrame is one classified line of the event stream. Frames are created
// per input line and consumed immediately; they are never retained.
type RawFrame struct {
	Kind    Kind
	Payload string
}

// Parser classifies raw event-stream lines into frames.
//
// The parser is stateful because the protocol delivers asynchronous error
// notices as two lines: the "event: error" marker arms a pending-error flag,
// and the next data line received is the error payload itself rather than a
// normal chunk.
type Parser struct {
	pendingError bool
}

// NewParser returns a Parser with no pending error.
func NewParser() *Parser {
	return &Parser{}
}

// Parse classifies one line of input. It never fails: undecodable payloads
// are a concern of DecodeChunk, not of line classification.
func (p *Parser) Parse(line string) RawFrame {
	if line == "" {
		return RawFrame{Kind: KindIgnored}
	}

	if strings.HasPrefix(line, errorEventMarker) {
		// The error payload arrives on the next data line.
		p.pendingError = true
		return RawFrame{Kind: KindIgnored}
	}

	if strings.HasPrefix(line, closeEventMarker) {
		return RawFrame{Kind: KindControlClose}
	}

	if !strings.HasPrefix(line, dataPrefix) {
		return RawFrame{Kind: KindIgnored}
	}

	payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))

	if p.pendingError {
		p.pendingError = false
		return RawFrame{Kind: KindControlError, Payload: payload}
	}

	// OpenAI-compatible servers end the stream with a [DONE] sentinel
	// instead of a close event. Treat both as the terminal signal.
	if payload == doneSentinel {
		return RawFrame{Kind: KindControlClose}
	}

	return RawFrame{Kind: KindData, Payload: payload}
}
