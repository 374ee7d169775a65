// Package parse provides utilities for decoding the JSON argument payloads
// of assembled tool calls. Because streamed arguments are concatenated from
// many small fragments, the final payload is occasionally malformed (single
// quotes, unquoted keys, a truncated tail); this package applies automatic
// JSON repair before falling back to a clear error.
//
// The main entry points are [Arguments], which decodes a payload into a
// generic map, and the generic [ArgumentsAs], which decodes into a caller
// supplied type.
package parse
