// Package session owns all mutable state of one in-flight streaming
// response: it drives the frame parser, tag tracker, and tool call
// accumulators, merges response-level scalar fields first-wins, and builds
// the final chat.ChatResponse once the stream's terminal signal arrives.
//
// Each session is driven by exactly one goroutine (the transport's delivery
// thread), so session state needs no internal locking. Concurrency only
// enters through a callback handler shared across sessions, which the
// dispatch package serializes.
package session
