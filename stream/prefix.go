package stream

import (
	"context"
	"strings"

	"github.com/hupe1980/boardstream/logging"
)

// dataPrefix is the SSE framing prefix the board server puts in front of
// every record payload.
const dataPrefix = "data: "

// PrefixStripper removes the SSE framing prefix from text fragments. It is
// stateless: every fragment produces at most one output. Fragments without
// the prefix are structurally valid but unusual; they pass through unchanged
// and the anomaly is surfaced on the diagnostic logger rather than silently
// normalized away.
type PrefixStripper struct {
	logger logging.Logger
}

// NewPrefixStripper creates a PrefixStripper. A nil logger disables
// diagnostics.
func NewPrefixStripper(logger logging.Logger) *PrefixStripper {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &PrefixStripper{logger: logger}
}

// Strip processes one fragment. Whitespace-only fragments are discarded
// (false). Otherwise the returned fragment has the "data: " prefix removed
// when present.
func (p *PrefixStripper) Strip(fragment string) (string, bool) {
	if strings.TrimSpace(fragment) == "" {
		return "", false
	}
	if rest, ok := strings.CutPrefix(fragment, dataPrefix); ok {
		return rest, true
	}
	p.logger.Warn("Fragment without data prefix", "fragment", fragment)
	return fragment, true
}

// Pipe adapts Strip to a channel stage.
func (p *PrefixStripper) Pipe(ctx context.Context, in <-chan string) <-chan string {
	return pipe(ctx, in, func(fragment string, emit func(string)) {
		if stripped, ok := p.Strip(fragment); ok {
			emit(stripped)
		}
	}, nil)
}
