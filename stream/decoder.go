package stream

import (
	"context"
	"strings"

	"github.com/hupe1980/boardstream/logging"
	"github.com/hupe1980/boardstream/runevent"
)

// Decoder parses complete records into typed run events. Decode failures of
// any kind (invalid JSON, wrong tuple shape, unknown discriminant, missing
// required fields) are converted into error events that flow downstream like
// any other event, so one malformed record never halts decoding of the
// records after it.
type Decoder struct {
	logger    logging.Logger
	parseOpts []func(o *runevent.ParseOptions)
}

// NewDecoder creates a Decoder. A nil logger disables diagnostics. Parse
// options adjust validation, e.g. runevent.WithShapeOnly.
func NewDecoder(logger logging.Logger, parseOpts ...func(o *runevent.ParseOptions)) *Decoder {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Decoder{logger: logger, parseOpts: parseOpts}
}

// Decode processes one record. Empty or whitespace-only records produce
// nothing (false). Every other record yields exactly one event: the decoded
// one, or an error event describing why decoding failed. Decode never
// returns an error.
func (d *Decoder) Decode(record string) (runevent.RunEvent, bool) {
	trimmed := strings.TrimSpace(record)
	if trimmed == "" {
		return nil, false
	}

	// A record reassembled from mid-stream fragments can still carry the SSE
	// framing prefix of a non-first record (the fragment-level stripper only
	// sees fragment starts). Records are JSON, which never begins with this
	// literal, so trimming here is unambiguous.
	trimmed, _ = strings.CutPrefix(trimmed, dataPrefix)

	ev, err := runevent.Parse([]byte(trimmed), d.parseOpts...)
	if err != nil {
		d.logger.Debug("Record failed to decode", "error", err)
		return runevent.NewErrorEvent(err.Error()), true
	}

	return ev, true
}

// Pipe adapts Decode to a channel stage.
func (d *Decoder) Pipe(ctx context.Context, in <-chan string) <-chan runevent.RunEvent {
	return pipe(ctx, in, func(record string, emit func(runevent.RunEvent)) {
		if ev, ok := d.Decode(record); ok {
			emit(ev)
		}
	}, nil)
}
