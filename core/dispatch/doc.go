// Package dispatch converts streaming assembly output into a discriminated
// set of callback events and delivers them to a caller-supplied handler.
//
// A Dispatcher guarantees two things: events from one session arrive in the
// exact order produced, and when one handler instance is shared across
// concurrently running sessions, callback invocations are mutually exclusive.
// The handler itself therefore never needs to be thread-safe.
package dispatch
