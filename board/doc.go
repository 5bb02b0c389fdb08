// Package board is the HTTP client for a remote board server: catalog
// listing, board description, single-shot invocation, and streaming runs.
//
// The simple request/response operations (List, Describe, Invoke) are
// retried with exponential backoff. Run opens a streaming response and hands
// its body to the stream pipeline; it is never retried — reconnection is a
// caller concern. Transport failures (request errors, non-2xx status,
// missing body) fail fast before any pipeline exists and are a distinct
// failure class from the error events that flow inside a healthy stream.
package board
