// Package frame turns raw event-stream lines into typed frames and decodes
// data-frame payloads into chunk records.
//
// The wire protocol delivers three kinds of lines: "data:"-prefixed JSON
// payloads, "event:"-prefixed control markers, and noise (blank lines,
// comments, keep-alives). Error notices are delivered as two separate lines:
// an "event: error" marker followed by a data line whose payload is the error
// detail, which is why the Parser is stateful.
package frame
