package stream

import "context"

const defaultBufferSize = 64

// pipe is the shared channel-stage skeleton: it runs fn for every value
// received on in, forwarding whatever fn emits, and closes the output when
// the input closes or the context is cancelled. done, if non-nil, runs once
// after the input is exhausted (not on cancellation).
func pipe[In, Out any](ctx context.Context, in <-chan In, fn func(v In, emit func(Out)), done func()) <-chan Out {
	out := make(chan Out, defaultBufferSize)

	go func() {
		defer close(out)

		emit := func(v Out) {
			select {
			case out <- v:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					if done != nil {
						done()
					}
					return
				}
				fn(v, emit)
			}
		}
	}()

	return out
}
