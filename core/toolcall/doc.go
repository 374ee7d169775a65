// Package toolcall reconstructs complete tool invocations from the
// fragmented deltas a streaming server emits: id and name fragments merge
// first-wins, argument substrings concatenate in arrival order, and a fresh
// call id is synthesized when the server never supplies one.
package toolcall
