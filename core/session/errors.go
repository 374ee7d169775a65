package session

import "fmt"

// MalformedFrameError reports a data frame whose payload could not be
// decoded. It is non-fatal by default: the frame is surfaced and skipped
// unless the session runs fail-fast.
type MalformedFrameError struct {
	Payload string
	Err     error
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("malformed frame: %v", e.Err)
}

func (e *MalformedFrameError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a server-sent error event. Detail carries the
// frame's literal payload text.
type UpstreamError struct {
	Detail string
}

func (e *UpstreamError) Error() string {
	return "upstream error: " + e.Detail
}

// ProtocolViolationError reports a broken API-contract assumption, such as a
// decreasing tool index. It is always a fatal session error.
type ProtocolViolationError struct {
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return "protocol violation: " + e.Reason
}
