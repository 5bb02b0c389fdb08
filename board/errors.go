package board

import (
	"errors"
	"fmt"
)

// ErrNoBody reports a streaming response that arrived without a usable body.
var ErrNoBody = errors.New("board server response has no body")

// TransportError reports a non-success HTTP response from the board server.
// Transport failures are fatal to the operation that encountered them; they
// are never converted into run events.
type TransportError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("board server responded with status %d: %s", e.StatusCode, e.Body)
}
