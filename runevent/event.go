package runevent

import (
	"encoding/json"
)

// Type discriminates the run event variants. It is the first element of the
// wire tuple.
type Type string

const (
	// TypeInput signals that the run paused and the board expects input.
	TypeInput Type = "input"
	// TypeOutput carries values produced by a node of the running board.
	TypeOutput Type = "output"
	// TypeError reports a failure, either from the board run itself or
	// synthesized locally when a wire record could not be decoded.
	TypeError Type = "error"
)

// RunEvent is one decoded, typed unit of progress reported by the board
// server. The union is closed: the only implementations are InputEvent,
// OutputEvent and ErrorEvent. Events are immutable once emitted.
type RunEvent interface {
	EventType() Type
}

// Node identifies the board node an event originates from.
type Node struct {
	ID string `json:"id"`
}

// InputEvent reports that the run paused at a node waiting for input. Next
// holds the continuation token used to resume the run with the requested
// values.
type InputEvent struct {
	Node           Node
	InputArguments map[string]any
	Next           string
}

// EventType returns TypeInput.
func (InputEvent) EventType() Type { return TypeInput }

// MarshalJSON encodes the event as its three-element wire tuple.
func (e InputEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{TypeInput, inputPayload{Node: e.Node, InputArguments: e.InputArguments}, e.Next})
}

// OutputEvent carries output values emitted by a node. Next holds the
// continuation token for the step following the output.
type OutputEvent struct {
	Node          Node
	Configuration map[string]any
	Outputs       map[string]any
	Next          string
}

// EventType returns TypeOutput.
func (OutputEvent) EventType() Type { return TypeOutput }

// MarshalJSON encodes the event as its three-element wire tuple.
func (e OutputEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{TypeOutput, outputPayload{Node: e.Node, Configuration: e.Configuration, Outputs: e.Outputs}, e.Next})
}

// ErrorEvent reports a failure as a human readable message. Error events
// never carry a continuation token; their wire tuple has exactly two
// elements.
type ErrorEvent struct {
	Message string
}

// EventType returns TypeError.
func (ErrorEvent) EventType() Type { return TypeError }

// MarshalJSON encodes the event as its two-element wire tuple.
func (e ErrorEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{TypeError, e.Message})
}

// NewInputEvent constructs an InputEvent for the given node and input schema.
func NewInputEvent(nodeID string, inputArguments map[string]any, next string) InputEvent {
	return InputEvent{Node: Node{ID: nodeID}, InputArguments: inputArguments, Next: next}
}

// NewOutputEvent constructs an OutputEvent for the given node and output map.
func NewOutputEvent(nodeID string, outputs map[string]any, next string) OutputEvent {
	return OutputEvent{Node: Node{ID: nodeID}, Outputs: outputs, Next: next}
}

// NewErrorEvent constructs an ErrorEvent with the given message.
func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Message: message}
}

// inputPayload / outputPayload mirror the second tuple element on the wire.
type inputPayload struct {
	Node           Node           `json:"node"`
	InputArguments map[string]any `json:"inputArguments"`
}

type outputPayload struct {
	Node          Node           `json:"node"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Outputs       map[string]any `json:"outputs"`
}
