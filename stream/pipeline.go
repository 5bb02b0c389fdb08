package stream

import (
	"context"
	"io"

	"github.com/hupe1980/boardstream/logging"
	"github.com/hupe1980/boardstream/runevent"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Logger receives pipeline diagnostics: unprefixed fragments, dropped
	// dangling partials and decode failures.
	Logger logging.Logger
	// ParseOptions adjust event validation (see runevent.WithShapeOnly).
	ParseOptions []func(o *runevent.ParseOptions)
}

// Pipeline chains the three decode stages. One Pipeline instance serves
// exactly one stream: the Reassembler's partial-record buffer is scoped to
// the instance and must not be shared across streams.
type Pipeline struct {
	stripper    *PrefixStripper
	reassembler *Reassembler
	decoder     *Decoder
}

// New constructs a Pipeline with optional overrides.
func New(optFns ...func(o *Options)) *Pipeline {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Pipeline{
		stripper:    NewPrefixStripper(opts.Logger),
		reassembler: NewReassembler(opts.Logger),
		decoder:     NewDecoder(opts.Logger, opts.ParseOptions...),
	}
}

// WithLogger overrides the pipeline diagnostic logger.
func WithLogger(logger logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = logger }
}

// WithParseOptions overrides event validation.
func WithParseOptions(parseOpts ...func(o *runevent.ParseOptions)) func(o *Options) {
	return func(o *Options) { o.ParseOptions = parseOpts }
}

// Events runs the pipeline over a fragment sequence and returns the lazy,
// ordered event sequence. The returned channel is closed when the fragment
// channel closes or the context is cancelled. Events preserve the relative
// order implied by fragment arrival order.
func (p *Pipeline) Events(ctx context.Context, fragments <-chan string) <-chan runevent.RunEvent {
	return p.decoder.Pipe(ctx, p.reassembler.Pipe(ctx, p.stripper.Pipe(ctx, fragments)))
}

// FragmentOptions configures Fragments.
type FragmentOptions struct {
	// ChunkSize bounds the size of a single read from the source.
	ChunkSize int
}

// Fragments adapts an io.Reader (typically an HTTP response body) into the
// text fragment sequence consumed by the pipeline. Fragments are
// arbitrary-length cuts of the stream with no alignment guarantee; the
// channel closes on EOF, read error or context cancellation. A hung reader
// stalls the sequence indefinitely; timeouts are the transport's concern.
func Fragments(ctx context.Context, r io.Reader, optFns ...func(o *FragmentOptions)) <-chan string {
	opts := FragmentOptions{
		ChunkSize: 4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	out := make(chan string, 1)

	go func() {
		defer close(out)

		buf := make([]byte, opts.ChunkSize)

		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case out <- string(buf[:n]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				// io.EOF and read errors both end the fragment sequence;
				// transport failures are surfaced before the pipeline is
				// ever constructed.
				return
			}
		}
	}()

	return out
}

// Collect drains an event sequence until it closes or the context is
// cancelled, returning all events observed in arrival order.
func Collect(ctx context.Context, events <-chan runevent.RunEvent) []runevent.RunEvent {
	var all []runevent.RunEvent

	for {
		select {
		case <-ctx.Done():
			return all
		case ev, ok := <-events:
			if !ok {
				return all
			}
			all = append(all, ev)
		}
	}
}
