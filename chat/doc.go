// Package chat defines the response data model produced by the streaming
// assembly engine: the final ChatResponse envelope, its per-choice messages,
// tool calls, and token usage totals. The types mirror the wire shape of
// OpenAI-compatible chat completions so assembled responses can be handed
// directly to code that already speaks that format.
package chat
