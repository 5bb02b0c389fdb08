// Package stream implements the three-stage pipeline that decodes the
// chunked text stream of a board run into typed run events:
//
//  1. PrefixStripper removes the "data: " SSE framing prefix from each
//     fragment and drops whitespace-only fragments.
//  2. Reassembler repairs fragment boundaries: network chunks do not align
//     with record boundaries, so it buffers partial records and re-emits
//     complete, delimiter-terminated records.
//  3. Decoder parses each record into a runevent.RunEvent, converting every
//     decode failure into an error event so one malformed record never
//     halts the stream.
//
// Stages are composable channel transforms in the usual producer-goroutine
// style (one value in, zero or more values out, output channel closed when
// the input closes or the context is cancelled), and each stage also
// exposes a pure per-fragment method for direct use. Pipeline chains all
// three. One Pipeline or Reassembler instance serves exactly one stream;
// instances are not safe for concurrent streams.
package stream
