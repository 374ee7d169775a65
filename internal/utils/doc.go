// Package utils provides shared low-level helpers used throughout the
// confluo internals: generic pointer and string utilities and a simple
// elapsed-time timer.
//
// Key entry points: [Ptr] for converting values to pointers, [JSONToString]
// for log-safe JSON serialization, and [Timer] for measuring latency.
package utils
