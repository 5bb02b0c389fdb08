package stream

import (
	"context"
	"strings"

	"github.com/hupe1980/boardstream/logging"
)

// recordDelimiter terminates one complete record on the wire.
const recordDelimiter = "\n\n"

// Reassembler repairs fragment boundaries. The transport delivers text in
// arbitrary cuts: one record may arrive split across several fragments and
// one fragment may carry several records. The Reassembler buffers the
// incomplete tail of the stream and emits only complete, delimiter-terminated
// records, in arrival order.
//
// The pending partial is owned by the instance; construct one Reassembler
// per stream and feed it from a single goroutine.
type Reassembler struct {
	logger  logging.Logger
	pending string
}

// NewReassembler creates a Reassembler. A nil logger disables diagnostics.
func NewReassembler(logger logging.Logger) *Reassembler {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Reassembler{logger: logger}
}

// Push feeds one fragment and returns the complete records it finishes, each
// re-suffixed with the record delimiter. A fragment containing no delimiter
// and not ending in one is purely buffered and returns nothing. For any
// fragmentation of a well-formed (delimiter-terminated) record stream, the
// concatenation of all Push results is identical to pushing the whole stream
// as a single fragment.
func (r *Reassembler) Push(fragment string) []string {
	if fragment == "" {
		return nil
	}

	// The pending partial is prepended before splitting: it may combine with
	// this fragment to complete more than one record, and the delimiter
	// itself can be cut in half by a fragment boundary.
	buf := r.pending + fragment
	r.pending = ""

	terminated := strings.HasSuffix(buf, recordDelimiter)

	segments := strings.Split(buf, recordDelimiter)
	if terminated {
		// Nothing follows the last delimiter; drop the empty trailer.
		segments = segments[:len(segments)-1]
	}

	var records []string

	for i, segment := range segments {
		if !terminated && i == len(segments)-1 {
			// Incomplete tail: buffer it until the delimiter arrives.
			r.pending = segment
			continue
		}

		records = append(records, segment+recordDelimiter)
	}

	return records
}

// Pending reports the buffered partial record, if any. When the stream
// closes without a final delimiter the dangling partial stays here; whether
// to flush or discard it is the caller's policy.
func (r *Reassembler) Pending() (string, bool) {
	return r.pending, r.pending != ""
}

// Pipe adapts Push to a channel stage. A partial left pending when the input
// closes is dropped (and logged at debug level).
func (r *Reassembler) Pipe(ctx context.Context, in <-chan string) <-chan string {
	return pipe(ctx, in, func(fragment string, emit func(string)) {
		for _, record := range r.Push(fragment) {
			emit(record)
		}
	}, func() {
		if partial, ok := r.Pending(); ok {
			r.logger.Debug("Dropping dangling partial record", "size", len(partial))
		}
	})
}
