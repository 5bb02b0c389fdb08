package runevent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode failure sentinels. Their texts are part of the service contract:
// they become the message of the synthesized error event a consumer sees,
// so they are not reworded to follow Go error string conventions.
var (
	// ErrParseFailure indicates the record was not valid JSON.
	ErrParseFailure = errors.New("Failed to parse event")
	// ErrStructuralInvalid indicates the record was valid JSON but not an
	// array tuple of at least two elements.
	ErrStructuralInvalid = errors.New("Invalid event format: expected array with at least 2 elements")
	// ErrUnknownEventType indicates a discriminant outside the closed union.
	ErrUnknownEventType = errors.New("Invalid event type")
	// ErrMissingRequiredField indicates a payload that lacks a field the
	// service contract requires for its event type.
	ErrMissingRequiredField = errors.New("missing required field")
)

// ParseOptions configures Parse.
type ParseOptions struct {
	// ShapeOnly disables the per-type required-field checks, accepting any
	// payload as long as the tuple shape and discriminant are valid. The
	// default is strict: input events must carry node.id and
	// inputArguments, output events node.id and outputs.
	ShapeOnly bool
}

// WithShapeOnly disables per-type payload validation.
func WithShapeOnly() func(o *ParseOptions) {
	return func(o *ParseOptions) { o.ShapeOnly = true }
}

// Parse decodes one complete wire record into a typed RunEvent. The record
// must already be stripped of SSE framing; a trailing record delimiter is
// tolerated. Failures are reported as errors matching the sentinels above
// via errors.Is; Parse never panics.
func Parse(data []byte, optFns ...func(o *ParseOptions)) (RunEvent, error) {
	opts := ParseOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Valid JSON, wrong top-level shape.
			return nil, ErrStructuralInvalid
		}
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(tuple) < 2 {
		return nil, ErrStructuralInvalid
	}

	var tag string
	if err := json.Unmarshal(tuple[0], &tag); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, tuple[0])
	}

	switch Type(tag) {
	case TypeError:
		var msg string
		if err := json.Unmarshal(tuple[1], &msg); err != nil {
			// Non-string error payloads are tolerated as raw text.
			msg = string(tuple[1])
		}
		return ErrorEvent{Message: msg}, nil

	case TypeInput:
		if !opts.ShapeOnly {
			if err := requireFields(tag, tuple[1], "node.id", "inputArguments"); err != nil {
				return nil, err
			}
		}
		var p inputPayload
		if err := json.Unmarshal(tuple[1], &p); err != nil {
			return nil, fmt.Errorf("%w: invalid %s payload: %v", ErrStructuralInvalid, tag, err)
		}
		return InputEvent{Node: p.Node, InputArguments: p.InputArguments, Next: next(tuple)}, nil

	case TypeOutput:
		if !opts.ShapeOnly {
			if err := requireFields(tag, tuple[1], "node.id", "outputs"); err != nil {
				return nil, err
			}
		}
		var p outputPayload
		if err := json.Unmarshal(tuple[1], &p); err != nil {
			return nil, fmt.Errorf("%w: invalid %s payload: %v", ErrStructuralInvalid, tag, err)
		}
		return OutputEvent{Node: p.Node, Configuration: p.Configuration, Outputs: p.Outputs, Next: next(tuple)}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, tag)
	}
}

// requireFields probes the raw payload for the presence of each gjson path.
func requireFields(tag string, payload json.RawMessage, paths ...string) error {
	for _, path := range paths {
		if !gjson.GetBytes(payload, path).Exists() {
			return fmt.Errorf("Invalid %s event: %w %q", tag, ErrMissingRequiredField, path)
		}
	}
	return nil
}

// next extracts the continuation token from the optional third tuple element.
func next(tuple []json.RawMessage) string {
	if len(tuple) < 3 {
		return ""
	}
	var token string
	if err := json.Unmarshal(tuple[2], &token); err != nil {
		return ""
	}
	return token
}
